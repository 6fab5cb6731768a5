package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ouarzazisaid0/wood-opcut/internal/model"
)

// RequestFile is the JSON shape of a request file fed to the CLI. IDs are
// optional; missing ones are generated on load.
type RequestFile struct {
	Stocks []StockEntry `json:"stocks"`
	Pieces []PieceEntry `json:"pieces"`
	Params *ParamsEntry `json:"params,omitempty"`
}

// StockEntry describes one stock sheet line in a request file.
type StockEntry struct {
	ID           string  `json:"id,omitempty"`
	Label        string  `json:"label"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Quantity     int     `json:"quantity"`
	CostPerSheet float64 `json:"cost_per_sheet,omitempty"`
}

// PieceEntry describes one required piece line in a request file.
type PieceEntry struct {
	ID        string  `json:"id,omitempty"`
	Label     string  `json:"label"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Quantity  int     `json:"quantity"`
	CanRotate *bool   `json:"can_rotate,omitempty"` // nil means rotatable
}

// ParamsEntry mirrors model.CutParams with the rotation policy by name.
type ParamsEntry struct {
	Kerf      *float64 `json:"kerf,omitempty"`
	MinOffcut *float64 `json:"min_offcut,omitempty"`
	Rotation  string   `json:"rotation,omitempty"`
	EdgeTrim  *float64 `json:"edge_trim,omitempty"`
}

// LoadRequestFile reads and decodes a request file into model inputs.
// Absent params fields keep the defaults from DefaultCutParams.
func LoadRequestFile(path string) ([]model.StockSheet, []model.Piece, model.CutParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, model.CutParams{}, fmt.Errorf("read request file: %w", err)
	}

	var rf RequestFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, nil, model.CutParams{}, fmt.Errorf("decode request file: %w", err)
	}

	stocks := make([]model.StockSheet, 0, len(rf.Stocks))
	for i, e := range rf.Stocks {
		label := e.Label
		if label == "" {
			label = fmt.Sprintf("Stock %d", i+1)
		}
		s := model.NewStockSheet(label, e.Width, e.Height, e.Quantity)
		if e.ID != "" {
			s.ID = e.ID
		}
		s.CostPerSheet = e.CostPerSheet
		stocks = append(stocks, s)
	}

	pieces := make([]model.Piece, 0, len(rf.Pieces))
	for i, e := range rf.Pieces {
		label := e.Label
		if label == "" {
			label = fmt.Sprintf("Piece %d", i+1)
		}
		p := model.NewPiece(label, e.Width, e.Height, e.Quantity)
		if e.ID != "" {
			p.ID = e.ID
		}
		if e.CanRotate != nil {
			p.CanRotate = *e.CanRotate
		}
		pieces = append(pieces, p)
	}

	params := model.DefaultCutParams()
	if rf.Params != nil {
		if rf.Params.Kerf != nil {
			params.Kerf = *rf.Params.Kerf
		}
		if rf.Params.MinOffcut != nil {
			params.MinOffcut = *rf.Params.MinOffcut
		}
		if rf.Params.Rotation != "" {
			params.Rotation = model.ParseRotationPolicy(rf.Params.Rotation)
		}
		if rf.Params.EdgeTrim != nil {
			params.EdgeTrim = *rf.Params.EdgeTrim
		}
	}

	return stocks, pieces, params, nil
}

// SaveSolution writes a solution to a JSON file, or to stdout when path is
// "-".
func SaveSolution(path string, sol model.Solution) error {
	data, err := json.MarshalIndent(sol, "", "  ")
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0644)
}
