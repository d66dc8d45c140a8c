package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('ativa', 'concluida', 'cancelada', 'suspensa');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'amendment_kind') THEN
			CREATE TYPE amendment_kind AS ENUM ('valor', 'prazo', 'escopo');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'proposal_status') THEN
			CREATE TYPE proposal_status AS ENUM ('aberta', 'aceita', 'contratada', 'recusada');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number VARCHAR(64) NOT NULL,
		client_name TEXT NOT NULL,
		project_name TEXT NOT NULL,
		base_value NUMERIC(18,2) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		status contract_status NOT NULL DEFAULT 'ativa',
		type VARCHAR(128) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_number ON contracts (number);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS amendments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		number INT NOT NULL,
		kind amendment_kind NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		additional_value NUMERIC(18,2),
		new_end_date DATE,
		date DATE NOT NULL,
		justification TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_amendments_contract_number ON amendments (contract_id, number);`,
	`CREATE INDEX IF NOT EXISTS idx_amendments_contract_id ON amendments (contract_id);`,
	`CREATE TABLE IF NOT EXISTS contract_templates (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name TEXT NOT NULL,
		category VARCHAR(128) NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS template_variables (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		template_id UUID NOT NULL REFERENCES contract_templates(id) ON DELETE CASCADE,
		position INT NOT NULL,
		name VARCHAR(128) NOT NULL,
		label TEXT NOT NULL,
		kind VARCHAR(16) NOT NULL DEFAULT 'text',
		required BOOLEAN NOT NULL DEFAULT FALSE
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_template_variables_name ON template_variables (template_id, name);`,
	`CREATE INDEX IF NOT EXISTS idx_template_variables_template_id ON template_variables (template_id);`,
	`CREATE TABLE IF NOT EXISTS proposals (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number VARCHAR(64) NOT NULL,
		client_name TEXT NOT NULL,
		project_name TEXT NOT NULL,
		status proposal_status NOT NULL DEFAULT 'aberta',
		total_value NUMERIC(18,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_proposals_number ON proposals (number);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
