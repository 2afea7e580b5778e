package service

import (
	"strings"

	"github.com/lunaria/arcana/internal/domain"
)

// Position descriptions on symbol annotations are free text ("upper
// left", "bottom of the card", "center"). They are reduced to coarse
// keyword buckets; this is a qualitative check, not a localization.

type positionHints struct {
	top, bottom, left, right, center bool
}

var positionKeywords = map[string][]string{
	"top":    {"top", "upper", "above", "sky"},
	"bottom": {"bottom", "lower", "below", "ground", "foot"},
	"left":   {"left"},
	"right":  {"right"},
	"center": {"center", "centre", "middle"},
}

func parsePosition(position string) positionHints {
	p := strings.ToLower(position)
	var h positionHints
	for bucket, words := range positionKeywords {
		for _, w := range words {
			if strings.Contains(p, w) {
				switch bucket {
				case "top":
					h.top = true
				case "bottom":
					h.bottom = true
				case "left":
					h.left = true
				case "right":
					h.right = true
				case "center":
					h.center = true
				}
				break
			}
		}
	}
	return h
}

// positionAnchor maps a position description to a fractional (x, y)
// point in the unit square, defaulting to the center when no keyword
// matches. Composite descriptions combine, so "upper left" lands at
// (0.25, 0.25).
func positionAnchor(position string) (fx, fy float64) {
	h := parsePosition(position)
	fx, fy = 0.5, 0.5
	if h.top {
		fy = 0.25
	}
	if h.bottom {
		fy = 0.75
	}
	if h.left {
		fx = 0.25
	}
	if h.right {
		fx = 0.75
	}
	return fx, fy
}

// boxSatisfiesPosition reports whether a detection box's center falls in
// the half or center region implied by a position description. A
// description with no recognized keyword accepts any box.
func boxSatisfiesPosition(position string, box domain.Box) bool {
	h := parsePosition(position)
	cx, cy := box.CenterX(), box.CenterY()
	if h.top && cy > 0.5 {
		return false
	}
	if h.bottom && cy < 0.5 {
		return false
	}
	if h.left && cx > 0.5 {
		return false
	}
	if h.right && cx < 0.5 {
		return false
	}
	if h.center && !h.top && !h.bottom && !h.left && !h.right {
		if cx < 0.25 || cx > 0.75 || cy < 0.25 || cy > 0.75 {
			return false
		}
	}
	return true
}
