package handlers

import (
	"github.com/rogerio-castellano/inventory-insights/internal/imagery"
	"github.com/rogerio-castellano/inventory-insights/internal/insight"
	repo "github.com/rogerio-castellano/inventory-insights/internal/repo"
	"github.com/rogerio-castellano/inventory-insights/internal/store"
)

var (
	inventory  *store.Store
	userRepo   repo.UserRepository
	refresher  *insight.Refresher
	modeSwitch *insight.ModeSwitch
	enricher   *imagery.Enricher

	supplierRepo repo.SupplierRepository
)

func SetStore(s *store.Store) {
	inventory = s
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRefresher(r *insight.Refresher) {
	refresher = r
}

func SetModeSwitch(m *insight.ModeSwitch) {
	modeSwitch = m
}

func SetEnricher(e *imagery.Enricher) {
	enricher = e
}

func SetSupplierRepo(r repo.SupplierRepository) {
	supplierRepo = r
}
