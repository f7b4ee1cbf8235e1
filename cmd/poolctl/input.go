package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"prize_pool/internal/config/env"
	"prize_pool/internal/probability"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// poolFile описание пула для allocate и analyze
//
//	ticket_price: 100
//	items:
//	  - name: iPhone
//	    value: 10
type poolFile struct {
	TicketPrice uint64 `yaml:"ticket_price"`
	Items       []struct {
		Name  string `yaml:"name"`
		Value uint64 `yaml:"value"`
	} `yaml:"items"`
}

type poolInput struct {
	ticketPrice uint64
	items       []probability.Input
}

func addPoolFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "YAML file with ticket_price and items")
	cmd.Flags().StringArray("item", nil, "item as name=value, repeatable")
	cmd.Flags().Uint64("price", 0, "ticket price in minor units, overrides the file")
}

func parsePoolYAML(data []byte) (poolInput, error) {
	var file poolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return poolInput{}, fmt.Errorf("failed to parse pool file: %w", err)
	}

	in := poolInput{ticketPrice: file.TicketPrice}
	for _, item := range file.Items {
		in.items = append(in.items, probability.Input{Name: item.Name, Value: item.Value})
	}
	return in, nil
}

// parseItemFlag разбирает "name=value". Имя может содержать '=', значение берется после последнего
func parseItemFlag(s string) (probability.Input, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 {
		return probability.Input{}, fmt.Errorf("item %q: expected name=value", s)
	}

	value, err := strconv.ParseUint(s[i+1:], 10, 64)
	if err != nil {
		return probability.Input{}, fmt.Errorf("item %q: %w", s, err)
	}
	return probability.Input{Name: s[:i], Value: value}, nil
}

func readPoolInput(cmd *cobra.Command) (poolInput, error) {
	var in poolInput

	path, _ := cmd.Flags().GetString("file")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return poolInput{}, fmt.Errorf("failed to read pool file: %w", err)
		}
		in, err = parsePoolYAML(data)
		if err != nil {
			return poolInput{}, err
		}
	}

	flags, _ := cmd.Flags().GetStringArray("item")
	for _, f := range flags {
		item, err := parseItemFlag(f)
		if err != nil {
			return poolInput{}, err
		}
		in.items = append(in.items, item)
	}

	if cmd.Flags().Changed("price") {
		in.ticketPrice, _ = cmd.Flags().GetUint64("price")
	}

	if len(in.items) == 0 {
		return poolInput{}, errors.New("no items: use --file or --item")
	}
	return in, nil
}

func engineParams(cmd *cobra.Command) (probability.Params, error) {
	path, _ := cmd.Flags().GetString("engine-config")
	if path == "" {
		path = env.EngineConfigPath()
	}

	cfg, err := env.NewEngineConfigFromYAML(path)
	if err != nil {
		return probability.Params{}, err
	}
	return cfg.Params(), nil
}

// parseProbs "7000,2000,1000" -> []uint32
func parseProbs(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	probs := make([]uint32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("probability %q: %w", p, err)
		}
		probs = append(probs, uint32(v))
	}
	return probs, nil
}
