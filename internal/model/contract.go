package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ativa"
	ContractStatusCompleted ContractStatus = "concluida"
	ContractStatusCanceled  ContractStatus = "cancelada"
	ContractStatusSuspended ContractStatus = "suspensa"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusActive, ContractStatusCompleted, ContractStatusCanceled, ContractStatusSuspended:
		return true
	}
	return false
}

type AmendmentKind string

const (
	AmendmentKindValue    AmendmentKind = "valor"
	AmendmentKindDeadline AmendmentKind = "prazo"
	AmendmentKindScope    AmendmentKind = "escopo"
)

func (k AmendmentKind) Valid() bool {
	switch k {
	case AmendmentKindValue, AmendmentKindDeadline, AmendmentKindScope:
		return true
	}
	return false
}

// Amendment is an "aditivo": an adjustment recorded against a contract after
// signature. Append-only; once written it is never edited or removed.
type Amendment struct {
	ID              uuid.UUID     `json:"id"`
	ContractID      uuid.UUID     `json:"contractId"`
	Number          int           `json:"number"`
	Kind            AmendmentKind `json:"kind"`
	Description     string        `json:"description"`
	AdditionalValue *float64      `json:"additionalValue,omitempty"` // kind=valor only
	NewEndDate      *time.Time    `json:"newEndDate,omitempty"`      // kind=prazo only
	Date            time.Time     `json:"date"`
	Justification   string        `json:"justification"`
}

type Contract struct {
	ID          uuid.UUID      `json:"id"`
	Number      string         `json:"number"`
	ClientName  string         `json:"clientName"`
	ProjectName string         `json:"projectName"`
	BaseValue   float64        `json:"baseValue"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
	Status      ContractStatus `json:"status"`
	Type        string         `json:"type"`
	Notes       string         `json:"notes"`
	Amendments  []Amendment    `json:"amendments" gorm:"-"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// EffectiveValue folds every value amendment over the immutable base value.
// The stored base value is never mutated by amendment appends, so the sum
// is safe to recompute on every read.
func (c Contract) EffectiveValue() float64 {
	total := c.BaseValue
	for _, a := range c.Amendments {
		if a.Kind == AmendmentKindValue && a.AdditionalValue != nil {
			total += *a.AdditionalValue
		}
	}
	return total
}

// EffectiveEndDate returns the new end date carried by the last deadline
// amendment in append order, or the base end date when none exists.
func (c Contract) EffectiveEndDate() time.Time {
	end := c.EndDate
	for _, a := range c.Amendments {
		if a.Kind == AmendmentKindDeadline && a.NewEndDate != nil {
			end = *a.NewEndDate
		}
	}
	return end
}

// ContractDocument bundles everything the document generators need.
type ContractDocument struct {
	Contract    Contract
	GeneratedAt time.Time
}
