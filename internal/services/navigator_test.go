package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigator_ForwardBack(t *testing.T) {
	n := NewNavigator()

	assert.Equal(t, "", n.Start(1, 10))
	n.Advance(1, 10, "p2")
	n.Advance(1, 10, "p3")

	token, ok := n.Back(1, 10)
	assert.True(t, ok)
	assert.Equal(t, "p2", token)

	token, ok = n.Back(1, 10)
	assert.True(t, ok)
	assert.Equal(t, "", token, "back from page two is the first page")

	_, ok = n.Back(1, 10)
	assert.False(t, ok, "already at the first page")

	token, ok = n.Forward(1, 10)
	assert.True(t, ok)
	assert.Equal(t, "p2", token)

	token, ok = n.Forward(1, 10)
	assert.True(t, ok)
	assert.Equal(t, "p3", token)

	_, ok = n.Forward(1, 10)
	assert.False(t, ok, "nothing ahead of the newest page")
}

func TestNavigator_AdvanceDropsForward(t *testing.T) {
	n := NewNavigator()

	n.Start(1, 10)
	n.Advance(1, 10, "p2")
	n.Advance(1, 10, "p3")

	_, ok := n.Back(1, 10)
	assert.True(t, ok)

	// Branching off page two invalidates the old forward history.
	n.Advance(1, 10, "p3-alt")
	_, ok = n.Forward(1, 10)
	assert.False(t, ok)

	token, ok := n.Back(1, 10)
	assert.True(t, ok)
	assert.Equal(t, "p2", token)
}

func TestNavigator_IndependentReports(t *testing.T) {
	n := NewNavigator()

	n.Start(1, 10)
	n.Advance(1, 10, "due-p2")
	n.Start(1, 11)
	n.Advance(1, 11, "overpaid-p2")
	n.Start(2, 10)

	token, ok := n.Back(1, 10)
	assert.True(t, ok)
	assert.Equal(t, "", token)

	token, ok = n.Forward(1, 11)
	assert.False(t, ok)
	_, ok = n.Back(1, 11)
	assert.True(t, ok)

	_, ok = n.Back(2, 10)
	assert.False(t, ok, "another admin's report has its own history")
}

func TestNavigator_Drop(t *testing.T) {
	n := NewNavigator()

	n.Start(1, 10)
	n.Advance(1, 10, "p2")
	n.Drop(1, 10)

	_, ok := n.Back(1, 10)
	assert.False(t, ok, "dropped history starts over")
}
