package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twilight-battle-server/cards"
)

func TestBlockMage(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	mage := loose(t, cards.Mago)
	bob.Defense[0] = mage
	darkMage := loose(t, cards.MagoNegro)
	bob.Defense[1] = darkMage

	_, err := r.BlockMage("alice", "bob", mage.InstanceID)
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "needs a Rei Mago")

	alice.Attack[0] = loose(t, cards.ReiMago)
	_, err = r.BlockMage("alice", "bob", darkMage.InstanceID)
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "Mago Negro does not answer to the king")

	res, err := r.BlockMage("alice", "bob", mage.InstanceID)
	require.NoError(t, err)
	assert.True(t, mage.Blocked)
	assert.Equal(t, "bob", res.TargetPlayerID)

	_, err = r.BlockMage("alice", "bob", mage.InstanceID)
	assert.ErrorIs(t, err, ErrActionAlreadyUsed)
}

func TestProphecyKillsAfterTwoOwnTurns(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	alice.Defense[0] = loose(t, cards.Profeta)
	doomed := loose(t, cards.Dragao)
	bob.Attack[0] = doomed

	res, err := r.Prophesy("alice", "bob", doomed.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, ProphecyTurns, res.Turns)
	assert.Equal(t, doomed.InstanceID, bob.ProphecyTarget)

	tr, err := r.EndTurn("alice")
	require.NoError(t, err)
	assert.Nil(t, tr.ProphecyFulfilled, "only the cursed player's turns count")

	tr, err = r.EndTurn("bob")
	require.NoError(t, err)
	assert.Nil(t, tr.ProphecyFulfilled)
	assert.Equal(t, 1, bob.ProphecyTurns)

	_, err = r.EndTurn("alice")
	require.NoError(t, err)
	tr, err = r.EndTurn("bob")
	require.NoError(t, err)
	require.NotNil(t, tr.ProphecyFulfilled)
	assert.Equal(t, doomed.InstanceID, tr.ProphecyFulfilled.Card.InstanceID)
	assert.Nil(t, bob.Attack[0])
	assert.Empty(t, bob.ProphecyTarget)
	assert.NotNil(t, r.Graveyard.Find(doomed.InstanceID))
}

func TestProphecyNeedsProfetaAndFreeTarget(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	c := loose(t, cards.Elfo)
	bob.Defense[0] = c

	_, err := r.Prophesy("alice", "bob", c.InstanceID)
	assert.ErrorIs(t, err, ErrPreconditionNotMet)

	alice.Defense[0] = loose(t, cards.Profeta)
	bob.ProphecyTarget = "other"
	bob.ProphecyTurns = 1
	_, err = r.Prophesy("alice", "bob", c.InstanceID)
	assert.ErrorIs(t, err, ErrPreconditionNotMet)

	bob.ProphecyTarget = ""
	_, err = r.Prophesy("alice", "bob", "missing")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestOracle(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	oracle := loose(t, cards.Oraculo)
	alice.Hand = []*Card{oracle}

	_, err := r.PerformOracle("alice", "bob")
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "needs an elf in defense")

	alice.Attack[0] = loose(t, cards.Elfo)
	_, err = r.PerformOracle("alice", "bob")
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "an elf in attack does not count")

	alice.Defense[3] = loose(t, cards.Elfo)
	bob.Talismans = []*Card{loose(t, cards.TalismaVerdade)}
	_, err = r.PerformOracle("alice", "bob")
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "truth talisman grants immunity")

	bob.Talismans = nil
	_, err = r.PerformOracle("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, -1, alice.handIndex(oracle.InstanceID))
	top, ok := r.Deck.Draw()
	require.True(t, ok)
	assert.Same(t, oracle, top)
}
