package converter

import (
	"math"
	"strconv"

	dto "prize_pool/internal/api/dto/pool"
	"prize_pool/internal/model"
)

func ToCreatePool(req dto.CreatePoolRequest) model.CreatePool {
	items := make([]model.PoolItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.PoolItemInput{
			Name:        item.Name,
			Image:       item.Image,
			Description: item.Description,
			Value:       item.Value,
		}
	}

	return model.CreatePool{
		CompanyName:  req.CompanyName,
		CompanyImage: req.CompanyImage,
		TicketPrice:  req.TicketPrice,
		Items:        items,
	}
}

func ToPoolResponse(pool model.Pool, decimals int32) dto.PoolResponse {
	items := make([]dto.PoolItemResponse, len(pool.Items))
	for i, item := range pool.Items {
		items[i] = dto.PoolItemResponse{
			Index:       item.Index,
			Name:        item.Name,
			Image:       item.Image,
			Description: item.Description,
			Value:       FormatAmount(item.Value, decimals),
			Probability: item.Probability,
			Percent:     FormatPercent(item.Probability),
			Available:   item.Available,
		}
	}

	return dto.PoolResponse{
		ID:               pool.ID,
		AuthorityID:      pool.AuthorityID,
		CompanyName:      pool.CompanyName,
		CompanyImage:     pool.CompanyImage,
		TicketPrice:      FormatAmount(pool.TicketPrice, decimals),
		TotalValue:       FormatAmount(pool.TotalValue, decimals),
		TotalTicketsSold: pool.TotalTicketsSold,
		TotalFunds:       FormatAmount(pool.TotalFunds, decimals),
		HouseEdge:        pool.HouseEdge,
		Active:           pool.Active,
		Items:            items,
		CreatedAt:        pool.CreatedAt,
	}
}

func ToTicketResponse(ticket model.Ticket, decimals int32) dto.TicketResponse {
	return dto.TicketResponse{
		ID:        ticket.ID.String(),
		PoolID:    ticket.PoolID,
		Price:     FormatAmount(ticket.Price, decimals),
		Used:      ticket.Used,
		CreatedAt: ticket.CreatedAt,
	}
}

func ToSpinResponse(res model.SpinResult, decimals int32) dto.SpinResponse {
	return dto.SpinResponse{
		ID:        res.ID,
		PoolID:    res.PoolID,
		TicketID:  res.TicketID.String(),
		ItemIndex: res.ItemIndex,
		ItemName:  res.Item.Name,
		ItemImage: res.Item.Image,
		ItemValue: FormatAmount(res.Item.Value, decimals),
		Seed:      strconv.FormatUint(res.Seed, 10),
		CreatedAt: res.CreatedAt,
	}
}

func ToWithdrawResponse(res model.Withdrawal, decimals int32) dto.WithdrawResponse {
	return dto.WithdrawResponse{
		PoolID:         res.PoolID,
		Amount:         FormatAmount(res.Amount, decimals),
		RemainingFunds: FormatAmount(res.RemainingFunds, decimals),
		Balance:        FormatAmount(res.Balance, decimals),
	}
}

func ToAnalysisResponse(poolID int64, analyses []model.ItemAnalysis, decimals int32) dto.AnalysisResponse {
	items := make([]dto.ItemAnalysisResponse, len(analyses))
	for i, a := range analyses {
		item := dto.ItemAnalysisResponse{
			ItemName:     a.ItemName,
			Value:        FormatAmount(a.Value, decimals),
			Probability:  a.Probability,
			ExpectedCost: a.ExpectedCost,
			Profit:       a.Profit,
			ProfitRatio:  a.ProfitRatio,
			ChanceIn10:   a.ChanceIn10,
		}
		// +Inf в JSON не кодируется
		if !math.IsInf(a.ExpectedSpins, 0) && !math.IsNaN(a.ExpectedSpins) {
			spins := a.ExpectedSpins
			item.ExpectedSpins = &spins
		}
		if a.SpinsFor80 > 0 {
			spins := a.SpinsFor80
			item.SpinsFor80 = &spins
		}
		items[i] = item
	}

	return dto.AnalysisResponse{
		PoolID: poolID,
		Items:  items,
	}
}

func ToStatsResponse(stats model.PoolStats, decimals int32) dto.StatsResponse {
	return dto.StatsResponse{
		PoolID:       stats.PoolID,
		TotalSpins:   stats.TotalSpins,
		TotalRevenue: stats.TotalRevenue.Shift(-decimals).StringFixed(decimals),
		TotalPayout:  stats.TotalPayout.Shift(-decimals).StringFixed(decimals),
		CurrentRTP:   stats.CurrentRTP,
		ExpectedRTP:  stats.ExpectedRTP,
		WindowRTP:    stats.WindowRTP,
		WindowSpins:  stats.WindowSpins,
		Drifting:     stats.Drifting,
		DriftEvents:  stats.DriftEvents,
	}
}
