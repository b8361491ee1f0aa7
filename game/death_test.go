package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twilight-battle-server/cards"
)

func TestDeathProcessorRedistributesCards(t *testing.T) {
	r := newTestRoom(t, "alice", "bob", "carol")
	bob := r.Players["bob"]

	handCreature := loose(t, cards.Centauro)
	handSpell := loose(t, cards.FeiticoCura)
	bob.Hand = []*Card{handCreature, handSpell}

	attacker := loose(t, cards.VampiroTayler)
	blade := loose(t, cards.BladeVampires)
	attacker.Equipped = []*Card{blade}
	bob.Attack[2] = attacker
	defender := loose(t, cards.Elfo)
	bob.Defense[4] = defender
	weapon := loose(t, cards.LaminaAlmas)
	bob.Equipment[0] = weapon
	talisman := loose(t, cards.TalismaOrdem)
	bob.Talismans = []*Card{talisman}
	bob.AddEffect(EffectSilence, 2)
	bob.ProphecyTarget = defender.InstanceID
	bob.ProphecyTurns = 1

	deck := r.Deck.Len()
	r.kill(bob)

	assert.True(t, bob.Dead)
	assert.True(t, bob.Observer)
	assert.Equal(t, 0, bob.Life)
	assert.Empty(t, bob.Hand)
	assert.Empty(t, bob.Creatures())
	for _, c := range bob.Equipment {
		assert.Nil(t, c)
	}
	assert.Empty(t, bob.Talismans)
	assert.Empty(t, bob.Effects)
	assert.Empty(t, bob.ProphecyTarget)

	for _, c := range []*Card{handCreature, attacker, blade, defender, weapon, talisman} {
		assert.NotNil(t, r.Graveyard.Find(c.InstanceID), "%s should be in the graveyard", c.TemplateID)
	}
	assert.Empty(t, attacker.Equipped)
	assert.NotNil(t, r.Deck.Find(handSpell.InstanceID), "non-creature hand cards go back to the deck")
	assert.Equal(t, deck+1, r.Deck.Len())

	assert.Equal(t, StatusInProgress, r.Status, "two players are still alive")
	assert.Equal(t, []string{"bob"}, r.Eliminated)
}

func TestLastPlayerStandingWins(t *testing.T) {
	r := newTestRoom(t, "alice", "bob", "carol")
	r.kill(r.Players["alice"])
	require.False(t, r.Finished())

	r.kill(r.Players["carol"])
	assert.True(t, r.Finished())
	assert.Equal(t, "bob", r.Winner)

	_, err := r.EndTurn("bob")
	assert.ErrorIs(t, err, ErrGameFinished)
}
