package model

import "fmt"

// ValidationError reports a malformed or self-contradictory request. It is
// fatal to the request and surfaced before any optimization work begins.
type ValidationError struct {
	Subject string // What the check applied to (piece/sheet label, parameter name)
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Subject == "" {
		return "invalid request: " + e.Reason
	}
	return fmt.Sprintf("invalid request: %s: %s", e.Subject, e.Reason)
}

// Request is the validated, immutable snapshot of one optimization run.
// Every placement strategy shares it read-only.
type Request struct {
	Stocks []StockSheet
	Pieces []Piece
	Params CutParams

	// PreInfeasible holds pieces whose both orientations exceed every
	// stock sheet. They are resolved during validation so strategies never
	// see them, and reported alongside whatever solution is found.
	PreInfeasible []InfeasiblePiece
}

// Usable returns the sheet region available for placements after edge trim.
func (r *Request) Usable(s StockSheet) Rect {
	return Rect{
		W: s.Size.W - 2*r.Params.EdgeTrim,
		H: s.Size.H - 2*r.Params.EdgeTrim,
	}
}

// Validate normalizes and checks a request, producing the immutable
// snapshot consumed by the placement strategies. Pieces that cannot fit any
// sheet are not a hard failure: they are moved into PreInfeasible so the
// caller can still get a partial solution for the rest.
func Validate(stocks []StockSheet, pieces []Piece, params CutParams) (*Request, error) {
	if len(stocks) == 0 {
		return nil, &ValidationError{Reason: "no stock sheets"}
	}
	if len(pieces) == 0 {
		return nil, &ValidationError{Reason: "no required pieces"}
	}
	if params.Kerf < 0 {
		return nil, &ValidationError{Subject: "kerf", Reason: fmt.Sprintf("must be >= 0, got %.3f", params.Kerf)}
	}
	if params.MinOffcut < 0 {
		return nil, &ValidationError{Subject: "min_offcut", Reason: fmt.Sprintf("must be >= 0, got %.3f", params.MinOffcut)}
	}
	if params.EdgeTrim < 0 {
		return nil, &ValidationError{Subject: "edge_trim", Reason: fmt.Sprintf("must be >= 0, got %.3f", params.EdgeTrim)}
	}

	req := &Request{Params: params}

	smallestDim := 0.0
	for _, s := range stocks {
		if s.Size.W <= 0 || s.Size.H <= 0 {
			return nil, &ValidationError{Subject: s.Label, Reason: fmt.Sprintf("sheet dimensions must be positive, got %.3fx%.3f", s.Size.W, s.Size.H)}
		}
		if s.Quantity < 0 {
			return nil, &ValidationError{Subject: s.Label, Reason: fmt.Sprintf("sheet quantity must be >= 0, got %d", s.Quantity)}
		}
		usable := Rect{W: s.Size.W - 2*params.EdgeTrim, H: s.Size.H - 2*params.EdgeTrim}
		if usable.W <= Epsilon || usable.H <= Epsilon {
			return nil, &ValidationError{Subject: s.Label, Reason: fmt.Sprintf("edge trim %.3f consumes the whole sheet", params.EdgeTrim)}
		}
		if smallestDim == 0 || s.Size.MinDim() < smallestDim {
			smallestDim = s.Size.MinDim()
		}
		req.Stocks = append(req.Stocks, s)
	}

	if params.Kerf > 0 && params.Kerf >= smallestDim {
		return nil, &ValidationError{Subject: "kerf", Reason: fmt.Sprintf("%.3f is not smaller than the smallest sheet dimension %.3f", params.Kerf, smallestDim)}
	}

	for _, p := range pieces {
		if p.Size.W <= 0 || p.Size.H <= 0 {
			return nil, &ValidationError{Subject: p.Label, Reason: fmt.Sprintf("piece dimensions must be positive, got %.3fx%.3f", p.Size.W, p.Size.H)}
		}
		if p.Quantity < 1 {
			return nil, &ValidationError{Subject: p.Label, Reason: fmt.Sprintf("piece quantity must be >= 1, got %d", p.Quantity)}
		}

		if req.fitsAnySheet(p) {
			req.Pieces = append(req.Pieces, p)
		} else {
			req.PreInfeasible = append(req.PreInfeasible, InfeasiblePiece{
				PieceID:  p.ID,
				Label:    p.Label,
				Quantity: p.Quantity,
				Reason:   fmt.Sprintf("%.0fx%.0f exceeds every stock sheet in both orientations", p.Size.W, p.Size.H),
			})
		}
	}

	return req, nil
}

// fitsAnySheet reports whether the piece fits the usable region of at least
// one stock sheet in some permitted orientation.
func (r *Request) fitsAnySheet(p Piece) bool {
	allowRotate := r.Params.AllowRotate(p)
	for _, s := range r.Stocks {
		if p.Size.FitsIn(r.Usable(s), allowRotate) {
			return true
		}
	}
	return false
}
