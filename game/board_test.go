package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twilight-battle-server/cards"
)

func TestBuildDeckHasEveryCopy(t *testing.T) {
	n := 0
	deck := BuildDeck(rand.New(rand.NewSource(7)), func() string {
		n++
		return fmt.Sprintf("c%04d", n)
	})
	assert.Equal(t, cards.DeckSize(), deck.Len())

	seen := make(map[string]bool)
	counts := make(map[string]int)
	for _, c := range deck.Cards() {
		assert.False(t, seen[c.InstanceID], "duplicate instance id %s", c.InstanceID)
		seen[c.InstanceID] = true
		counts[c.TemplateID]++
	}
	for _, tpl := range cards.All() {
		assert.Equal(t, tpl.Count, counts[tpl.ID], tpl.ID)
	}
}

func TestDefaultInstanceIDsAreFullUUIDs(t *testing.T) {
	r := NewRoom("R1", testRules(), WithRand(rand.New(rand.NewSource(3))))
	seen := make(map[string]bool, r.Deck.Len())
	for _, c := range r.Deck.Cards() {
		_, err := uuid.Parse(c.InstanceID)
		require.NoError(t, err, c.InstanceID)
		assert.False(t, seen[c.InstanceID])
		seen[c.InstanceID] = true
	}
}

func TestPileOrdering(t *testing.T) {
	p := &Pile{}
	a, b, c := loose(t, cards.Elfo), loose(t, cards.Mago), loose(t, cards.Runa)
	p.PushTop(a)
	p.PushTop(b)
	p.PushBottom(c)

	top, ok := p.Draw()
	require.True(t, ok)
	assert.Same(t, b, top)

	removed, ok := p.Remove(c.InstanceID)
	require.True(t, ok)
	assert.Same(t, c, removed)
	assert.Equal(t, 1, p.Len())

	_, ok = p.Remove("missing")
	assert.False(t, ok)
	p.Draw()
	_, ok = p.Draw()
	assert.False(t, ok)
}

func TestPlayPlacesByCategory(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice := r.Players["alice"]
	elf := loose(t, cards.Elfo)
	helmet := loose(t, cards.CapaceteTrevas)
	talisman := loose(t, cards.TalismaGuerreiro)
	centaur := loose(t, cards.Centauro)
	spell := loose(t, cards.FeiticoCura)
	alice.Hand = []*Card{elf, helmet, talisman, centaur, spell}

	tests := []struct {
		name string
		card *Card
		to   SlotRef
		want error
	}{
		{"creature to attack", elf, SlotRef{Zone: ZoneAttack, Index: 1}, nil},
		{"creature to occupied", centaur, SlotRef{Zone: ZoneAttack, Index: 1}, ErrSlotOccupied},
		{"creature out of range", centaur, SlotRef{Zone: ZoneDefense, Index: 6}, ErrInvalidZoneOrSlot},
		{"centaur as mount", centaur, SlotRef{Zone: ZoneEquipment, Equip: SlotMount}, nil},
		{"armor to weapon slot", helmet, SlotRef{Zone: ZoneEquipment, Equip: SlotWeapon}, ErrInvalidZoneOrSlot},
		{"armor to helmet slot", helmet, SlotRef{Zone: ZoneEquipment, Equip: SlotHelmet}, nil},
		{"talisman to pool", talisman, SlotRef{Zone: ZoneTalisman}, nil},
		{"spell to board", spell, SlotRef{Zone: ZoneDefense, Index: 0}, ErrInvalidZoneOrSlot},
		{"unknown card", &Card{InstanceID: "ghost"}, SlotRef{Zone: ZoneDefense}, ErrCardNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.used["alice"][ActionPlay] = false
			_, err := r.Play("alice", tt.card.InstanceID, tt.to)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.False(t, r.Used("alice", ActionPlay))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, -1, alice.handIndex(tt.card.InstanceID))
			assert.True(t, r.Used("alice", ActionPlay))
		})
	}

	assert.Same(t, elf, alice.Attack[1])
	assert.Same(t, centaur, alice.EquipmentIn(SlotMount))
	assert.Same(t, helmet, alice.EquipmentIn(SlotHelmet))
	assert.Equal(t, []*Card{talisman}, alice.Talismans)
	assert.Equal(t, []*Card{spell}, alice.Hand)
}

func TestMoveSwapFlip(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice := r.Players["alice"]
	elf, mage := loose(t, cards.Elfo), loose(t, cards.Mago)
	alice.Attack[0] = elf
	alice.Defense[3] = mage

	_, err := r.Move("alice", SlotRef{Zone: ZoneAttack, Index: 0}, SlotRef{Zone: ZoneDefense, Index: 3})
	assert.ErrorIs(t, err, ErrSlotOccupied)
	_, err = r.Move("alice", SlotRef{Zone: ZoneAttack, Index: 2}, SlotRef{Zone: ZoneDefense, Index: 0})
	assert.ErrorIs(t, err, ErrCardNotFound)

	_, err = r.Move("alice", SlotRef{Zone: ZoneAttack, Index: 0}, SlotRef{Zone: ZoneDefense, Index: 0})
	require.NoError(t, err)
	assert.Nil(t, alice.Attack[0])
	assert.Same(t, elf, alice.Defense[0])

	_, err = r.Swap("alice", SlotRef{Zone: ZoneDefense, Index: 0}, SlotRef{Zone: ZoneDefense, Index: 0})
	assert.ErrorIs(t, err, ErrInvalidZoneOrSlot)
	res, err := r.Swap("alice", SlotRef{Zone: ZoneDefense, Index: 3}, SlotRef{Zone: ZoneAttack, Index: 2})
	require.NoError(t, err)
	assert.Same(t, mage, alice.Attack[2])
	assert.Nil(t, alice.Defense[3])
	require.NotNil(t, res.Card)
	assert.Equal(t, mage.InstanceID, res.Card.InstanceID)
	assert.Nil(t, res.Other)

	_, err = r.Flip("alice", SlotRef{Zone: ZoneHand})
	assert.ErrorIs(t, err, ErrInvalidZoneOrSlot)
	_, err = r.Flip("alice", SlotRef{Zone: ZoneAttack, Index: 2})
	require.NoError(t, err)
	assert.True(t, mage.Tapped)
	_, err = r.Flip("alice", SlotRef{Zone: ZoneAttack, Index: 2})
	assert.ErrorIs(t, err, ErrActionAlreadyUsed)
}
