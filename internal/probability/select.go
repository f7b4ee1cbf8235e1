package probability

// Item Предмет пула с уже зафиксированной вероятностью
type Item struct {
	Name        string
	Value       uint64
	Probability uint32
	Available   bool
}

// Select выбирает индекс по кумулятивной сумме вероятностей.
// draw = seed mod total, возвращается первый индекс, где накопленная сумма больше draw.
// Чистая функция: одинаковые (probabilities, seed) всегда дают одинаковый индекс.
func Select(probabilities []uint32, seed uint64) (int, error) {
	var total uint64
	for _, p := range probabilities {
		total += uint64(p)
	}
	if total == 0 {
		return -1, ErrNoAvailableItems
	}

	draw := seed % total

	var cumulative uint64
	for i, p := range probabilities {
		cumulative += uint64(p)
		if cumulative > draw {
			return i, nil
		}
	}

	// Недостижимо: draw < total
	return -1, ErrNoAvailableItems
}

// SelectAvailable выбирает среди доступных предметов с ненулевой вероятностью
// и возвращает индекс в исходном списке. Сами вероятности не пересчитываются.
func SelectAvailable(items []Item, seed uint64) (int, error) {
	indexes := make([]int, 0, len(items))
	probs := make([]uint32, 0, len(items))
	for i, item := range items {
		if !item.Available || item.Probability == 0 {
			continue
		}
		indexes = append(indexes, i)
		probs = append(probs, item.Probability)
	}

	idx, err := Select(probs, seed)
	if err != nil {
		return -1, err
	}
	return indexes[idx], nil
}
