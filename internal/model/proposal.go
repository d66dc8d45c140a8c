package model

import (
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalStatusOpen       ProposalStatus = "aberta"
	ProposalStatusAccepted   ProposalStatus = "aceita"
	ProposalStatusContracted ProposalStatus = "contratada"
	ProposalStatusRejected   ProposalStatus = "recusada"
)

// Proposal is an upstream client proposal. Read-mostly here: the service only
// transitions it to "contratada" when a contract is generated from it.
type Proposal struct {
	ID          uuid.UUID      `json:"id"`
	Number      string         `json:"number"`
	ClientName  string         `json:"clientName"`
	ProjectName string         `json:"projectName"`
	Status      ProposalStatus `json:"status"`
	TotalValue  float64        `json:"totalValue"`
	CreatedAt   time.Time      `json:"createdAt"`
}
