package models

import (
	"strings"
)

// Shape is the closed set of paddle face shapes. Every assembled record
// carries exactly one of these values.
type Shape string

const (
	ShapeElongated Shape = "Elongated"
	ShapeHybrid    Shape = "Hybrid"
	ShapeWideBody  Shape = "Wide-body"
)

// Metadata identifies a paddle and records which site produced the record.
type Metadata struct {
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Source string `json:"source"`
}

// Specs holds the physical specification fields. Pointer fields are nil when
// the source page did not yield a value; defaults belong to the importer,
// never to the scraper.
type Specs struct {
	Shape             Shape    `json:"shape"`
	Surface           *string  `json:"surface"`
	AverageWeight     *float64 `json:"average_weight"`
	Core              *float64 `json:"core"`
	PaddleLength      *float64 `json:"paddle_length"`
	PaddleWidth       *float64 `json:"paddle_width"`
	GripLength        *float64 `json:"grip_length"`
	GripType          *string  `json:"grip_type"`
	GripCircumference *float64 `json:"grip_circumference"`
}

// Performance holds derived performance ratings. The whole struct is absent
// when the source page does not publish them; values are never synthesized.
type Performance struct {
	Power        *float64 `json:"power"`
	Pop          *float64 `json:"pop"`
	Spin         *float64 `json:"spin"`
	TwistWeight  *float64 `json:"twist_weight"`
	SwingWeight  *float64 `json:"swing_weight"`
	BalancePoint *float64 `json:"balance_point"`
}

// Empty reports whether no rating was resolved at all.
func (p *Performance) Empty() bool {
	return p == nil || (p.Power == nil && p.Pop == nil && p.Spin == nil &&
		p.TwistWeight == nil && p.SwingWeight == nil && p.BalancePoint == nil)
}

// Paddle is one assembled product record. It is immutable after assembly.
type Paddle struct {
	ID          string       `json:"id"`
	Metadata    Metadata     `json:"metadata"`
	Specs       Specs        `json:"specs"`
	Performance *Performance `json:"performance"`
}

// PaddleID derives the canonical identifier from brand and model: both are
// case-folded, whitespace runs become single hyphens, and the two slugs are
// joined with a hyphen. Equal brand+model always collide; that collision is
// the deduplication key used by storage.
func PaddleID(brand, model string) string {
	return slug(brand) + "-" + slug(model)
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// ImportMetadata is the identity part of the catalog import contract. The
// catalog derives its own id and does not accept provenance.
type ImportMetadata struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
}

// ImportPayload is the shape the downstream catalog API ingests: metadata
// without id or source, plus specs and performance as-is.
type ImportPayload struct {
	Metadata    ImportMetadata `json:"metadata"`
	Specs       Specs          `json:"specs"`
	Performance *Performance   `json:"performance,omitempty"`
}

// ImportPayload converts a record to the catalog ingestion shape.
func (p *Paddle) ImportPayload() ImportPayload {
	return ImportPayload{
		Metadata:    ImportMetadata{Brand: p.Metadata.Brand, Model: p.Metadata.Model},
		Specs:       p.Specs,
		Performance: p.Performance,
	}
}
