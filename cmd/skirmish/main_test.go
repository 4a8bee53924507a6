package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/game/battle"
	"github.com/zeusync/skirmish/internal/game/roster"
	"github.com/zeusync/skirmish/internal/game/round"
)

func TestPrintResult(t *testing.T) {
	r, err := roster.New(
		roster.Participant{ID: 1, Name: "Red"},
		roster.Participant{ID: 2, Name: "Blue"},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	printResult(&buf, r, battle.Result{Result: round.Result{
		Round: 2, Title: "GHOST MODE", Arena: "crater",
		Winners: []roster.ParticipantID{2, 7},
	}})
	assert.Contains(t, buf.String(), "Round 2")
	assert.Contains(t, buf.String(), "winners: Blue, P7")

	buf.Reset()
	printResult(&buf, r, battle.Result{Result: round.Result{Round: 3, Title: "AI SURVIVAL", Skipped: true}})
	assert.Contains(t, buf.String(), "skipped")
}

func TestNamesWithoutWinners(t *testing.T) {
	r, err := roster.New()
	require.NoError(t, err)
	assert.Equal(t, "-", names(r, nil))
}
