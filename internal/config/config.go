// Package config loads and saves network definition files (YAML) and
// builds live nets from them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gridsim/internal/control"
	"github.com/san-kum/gridsim/internal/network"
)

type Network struct {
	Name               string              `yaml:"name"`
	Trafos             []Trafo             `yaml:"trafos"`
	Trafo3Ws           []Trafo3W           `yaml:"trafo3ws"`
	Controllers        []ControllerSpec    `yaml:"controllers"`
	TapCharacteristics []TapCharacteristic `yaml:"tap_characteristics"`
}

type Trafo struct {
	Name       string  `yaml:"name"`
	HVBus      int     `yaml:"hv_bus"`
	LVBus      int     `yaml:"lv_bus"`
	SnMVA      float64 `yaml:"sn_mva"`
	VkPercent  float64 `yaml:"vk_percent"`
	VkrPercent float64 `yaml:"vkr_percent"`
	TapPos     int     `yaml:"tap_pos"`
	TapNeutral int     `yaml:"tap_neutral"`
}

type Trafo3W struct {
	Name       string  `yaml:"name"`
	HVBus      int     `yaml:"hv_bus"`
	MVBus      int     `yaml:"mv_bus"`
	LVBus      int     `yaml:"lv_bus"`
	SnHVMVA    float64 `yaml:"sn_hv_mva"`
	SnMVMVA    float64 `yaml:"sn_mv_mva"`
	SnLVMVA    float64 `yaml:"sn_lv_mva"`
	VkHV       float64 `yaml:"vk_hv_percent"`
	VkMV       float64 `yaml:"vk_mv_percent"`
	VkLV       float64 `yaml:"vk_lv_percent"`
	VkrHV      float64 `yaml:"vkr_hv_percent"`
	VkrMV      float64 `yaml:"vkr_mv_percent"`
	VkrLV      float64 `yaml:"vkr_lv_percent"`
	TapPos     int     `yaml:"tap_pos"`
	TapNeutral int     `yaml:"tap_neutral"`
}

type ControllerSpec struct {
	Type           string         `yaml:"type"`
	InService      *bool          `yaml:"in_service"`
	Order          float64        `yaml:"order"`
	Level          int            `yaml:"level"`
	Params         map[string]any `yaml:"params"`
	DropSame       bool           `yaml:"drop_same_existing"`
	MatchingParams map[string]any `yaml:"matching_params"`
}

type TapCharacteristic struct {
	Table    string      `yaml:"table"`
	Index    []int       `yaml:"index"`
	Variable string      `yaml:"variable"`
	XPoints  [][]float64 `yaml:"x_points"`
	YPoints  [][]float64 `yaml:"y_points"`
}

func Load(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Network{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Network) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build constructs a live net from the definition: transformer rows,
// registered controllers (with the duplicate-drop policy applied when
// requested), and tap-dependent impedance characteristics.
func (cfg *Network) Build() (*network.Net, error) {
	net := network.New(cfg.Name)

	for _, tr := range cfg.Trafos {
		net.Trafo().Append(map[string]any{
			"name":        tr.Name,
			"hv_bus":      tr.HVBus,
			"lv_bus":      tr.LVBus,
			"sn_mva":      tr.SnMVA,
			"vk_percent":  tr.VkPercent,
			"vkr_percent": tr.VkrPercent,
			"tap_pos":     tr.TapPos,
			"tap_neutral": tr.TapNeutral,
		})
	}
	for _, tr := range cfg.Trafo3Ws {
		net.Trafo3W().Append(map[string]any{
			"name":           tr.Name,
			"hv_bus":         tr.HVBus,
			"mv_bus":         tr.MVBus,
			"lv_bus":         tr.LVBus,
			"sn_hv_mva":      tr.SnHVMVA,
			"sn_mv_mva":      tr.SnMVMVA,
			"sn_lv_mva":      tr.SnLVMVA,
			"vk_hv_percent":  tr.VkHV,
			"vk_mv_percent":  tr.VkMV,
			"vk_lv_percent":  tr.VkLV,
			"vkr_hv_percent": tr.VkrHV,
			"vkr_mv_percent": tr.VkrMV,
			"vkr_lv_percent": tr.VkrLV,
			"tap_pos":        tr.TapPos,
			"tap_neutral":    tr.TapNeutral,
		})
	}

	registry := control.NewRegistry()
	for _, spec := range cfg.Controllers {
		ctrl, err := registry.Get(spec.Type, spec.Params)
		if err != nil {
			return nil, err
		}
		next := len(net.Controller().Index())
		if spec.DropSame {
			control.DropSameTypeExistingControllers(net,
				control.TypeSelector{Match: sameTypeAs(ctrl)}, next, spec.MatchingParams)
		} else {
			control.LogSameTypeExistingControllers(net,
				control.TypeSelector{Match: sameTypeAs(ctrl)}, next, spec.MatchingParams)
		}
		inService := true
		if spec.InService != nil {
			inService = *spec.InService
		}
		control.Register(net, ctrl, inService, spec.Order, spec.Level)
	}

	for _, tc := range cfg.TapCharacteristics {
		table := tc.Table
		if table == "" {
			table = network.TableTrafo
		}
		err := control.CreateTrafoCharacteristics(net, table, tc.Index, tc.Variable,
			tc.XPoints, tc.YPoints)
		if err != nil {
			return nil, fmt.Errorf("tap characteristic for %s: %w", table, err)
		}
	}

	return net, nil
}

// sameTypeAs matches controllers sharing the candidate's type name.
func sameTypeAs(c control.Controller) func(control.Controller) bool {
	token := func(ctrl control.Controller) string {
		s := ctrl.String()
		for i := 0; i < len(s); i++ {
			if s[i] == ' ' {
				return s[:i]
			}
		}
		return s
	}
	want := token(c)
	return func(other control.Controller) bool {
		return token(other) == want
	}
}
