package tui

import (
	"github.com/lribeiro/dexview/catalog"
	"github.com/lribeiro/dexview/client"
)

// Message types for Bubble Tea state transitions

type batchLoadedMsg struct {
	err error
}

type settleMsg struct{}

type refreshMsg struct{}

type detailLoadedMsg struct {
	record    *client.Pokemon
	species   *client.Species
	stages    []catalog.Stage
	abilities []client.Ability
	err       error
}

type regionChangedMsg struct {
	region catalog.Region
}
