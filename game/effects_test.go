package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twilight-battle-server/cards"
)

func TestEquipLegality(t *testing.T) {
	tests := []struct {
		item     string
		creature string
		want     error
	}{
		{cards.BladeVampires, cards.VampiroTayler, nil},
		{cards.BladeVampires, cards.Elfo, ErrEquipmentIllegal},
		{cards.BladeDragons, cards.Elfo, nil},
		{cards.BladeDragons, cards.VampiroWers, nil},
		{cards.BladeDragons, cards.Mago, ErrEquipmentIllegal},
		{cards.LaminaAlmas, cards.MagoNegro, nil},
		{cards.LaminaAlmas, cards.Centauro, ErrEquipmentIllegal},
		{cards.CapaceteTrevas, cards.Centauro, nil},
		{cards.Runa, cards.Elfo, ErrEquipmentIllegal},
	}
	for _, tt := range tests {
		t.Run(tt.item+"_on_"+tt.creature, func(t *testing.T) {
			r := newTestRoom(t, "alice", "bob")
			alice := r.Players["alice"]
			item := loose(t, tt.item)
			alice.Hand = append(alice.Hand, item)
			creature := loose(t, tt.creature)
			alice.Defense[0] = creature
			life, attack := creature.Life, creature.Attack

			_, err := r.Equip("alice", item.InstanceID, creature.InstanceID)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Empty(t, creature.Equipped)
				assert.GreaterOrEqual(t, alice.handIndex(item.InstanceID), 0)
				assert.False(t, r.Used("alice", ActionPlay))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []*Card{item}, creature.Equipped)
			assert.Equal(t, attack+item.Attack, creature.Attack)
			assert.Equal(t, life+item.Protection, creature.Life)
			assert.Equal(t, -1, alice.handIndex(item.InstanceID))
			assert.True(t, r.Used("alice", ActionPlay))
		})
	}
}

func TestEquipCapacity(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice := r.Players["alice"]
	vamp := loose(t, cards.VampiroTayler)
	alice.Attack[0] = vamp
	vamp.Equipped = []*Card{loose(t, cards.BladeDragons)}

	blade := loose(t, cards.BladeVampires)
	alice.Hand = append(alice.Hand, blade)
	_, err := r.Equip("alice", blade.InstanceID, vamp.InstanceID)
	assert.ErrorIs(t, err, ErrEquipmentIllegal, "one weapon per creature")

	for i := 0; i < MaxArmorPerCreature; i++ {
		vamp.Equipped = append(vamp.Equipped, loose(t, cards.CapaceteTrevas))
	}
	helmet := loose(t, cards.CapaceteTrevas)
	alice.Hand = append(alice.Hand, helmet)
	_, err = r.Equip("alice", helmet.InstanceID, vamp.InstanceID)
	assert.ErrorIs(t, err, ErrEquipmentIllegal, "four armor pieces per creature")

	_, err = r.Equip("alice", helmet.InstanceID, "nowhere")
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCastSpellNeedsUnblockedMage(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice := r.Players["alice"]
	cura := loose(t, cards.FeiticoCura)
	alice.Hand = append(alice.Hand, cura)

	_, err := r.CastSpell("alice", SpellRequest{CardRef: cura.InstanceID})
	assert.ErrorIs(t, err, ErrPreconditionNotMet)

	mage := loose(t, cards.Mago)
	mage.Blocked = true
	alice.Defense[0] = mage
	_, err = r.CastSpell("alice", SpellRequest{CardRef: cura.InstanceID})
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "blocked mages cannot channel")
	assert.Equal(t, 5000, alice.Life)

	mage.Blocked = false
	res, err := r.CastSpell("alice", SpellRequest{CardRef: cura.InstanceID})
	require.NoError(t, err)
	assert.Equal(t, ZoneHand, res.Source)
	assert.Equal(t, "alice", res.TargetPlayerID)
	assert.Equal(t, 6000, alice.Life)
	assert.Equal(t, -1, alice.handIndex(cura.InstanceID))
	assert.NotNil(t, r.Graveyard.Find(cura.InstanceID))

	_, err = r.CastSpell("alice", SpellRequest{CardRef: cura.InstanceID})
	assert.ErrorIs(t, err, ErrActionAlreadyUsed)
}

func TestProxyCasterPullsFromGraveyard(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	alice.Attack[0] = loose(t, cards.ReiMago)
	cura := loose(t, cards.FeiticoCura)
	r.Graveyard.PushTop(cura)

	res, err := r.CastSpell("alice", SpellRequest{CardRef: cura.InstanceID, TargetPlayerID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, ZoneGraveyard, res.Source)
	assert.Equal(t, 6000, bob.Life)
	assert.Nil(t, r.Graveyard.Find(cura.InstanceID))
	assert.Same(t, cura, r.Deck.Cards()[0], "proxy-cast spells return to the bottom of the deck")
}

func TestSpellImmunity(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	alice.Defense[0] = loose(t, cards.Mago)
	cura := loose(t, cards.FeiticoCura)
	alice.Hand = append(alice.Hand, cura)
	bob.Talismans = []*Card{loose(t, cards.TalismaVerdade)}

	_, err := r.CastSpell("alice", SpellRequest{CardRef: cura.InstanceID, TargetPlayerID: "bob"})
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
	assert.GreaterOrEqual(t, alice.handIndex(cura.InstanceID), 0)
	assert.Equal(t, 5000, bob.Life)
}

func TestUnregisteredSpellIsRejected(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice := r.Players["alice"]
	alice.Defense[0] = loose(t, cards.Mago)
	forever := loose(t, cards.FeiticoParaSempre)
	alice.Hand = append(alice.Hand, forever)

	_, err := r.CastSpell("alice", SpellRequest{CardRef: forever.InstanceID})
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
	assert.GreaterOrEqual(t, alice.handIndex(forever.InstanceID), 0)
}

// ritual157Board satisfies every Ritual 157 condition for p, replacing the dealt hand.
func ritual157Board(t *testing.T, p *Player) {
	p.Hand = nil
	p.Attack[0] = loose(t, cards.Apofis)
	p.Hand = append(p.Hand, loose(t, cards.MagoNegro))
	for i := 0; i < 4; i++ {
		p.Hand = append(p.Hand, loose(t, cards.Zumbi))
	}
	p.Attack[1] = loose(t, cards.Zumbi)
	p.Defense[0] = loose(t, cards.Zumbi)
	p.Defense[1] = loose(t, cards.Elfo)
	p.Defense[2] = loose(t, cards.Elfo)
}

func TestRitual157Preconditions(t *testing.T) {
	tests := []struct {
		name  string
		spoil func(p *Player)
	}{
		{"missing apofis", func(p *Player) { p.Attack[0] = nil }},
		{"missing mago negro", func(p *Player) {
			p.takeFromHand(p.handCard(cards.MagoNegro).InstanceID)
		}},
		{"five zombies", func(p *Player) { p.Defense[0] = nil }},
		{"elf moved to attack", func(p *Player) {
			p.Attack[2] = p.Defense[2]
			p.Defense[2] = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRoom(t, "alice", "bob")
			alice, bob := r.Players["alice"], r.Players["bob"]
			ritual157Board(t, alice)
			rc := loose(t, cards.Ritual157)
			alice.Hand = append(alice.Hand, rc)
			tt.spoil(alice)
			bob.Talismans = []*Card{loose(t, cards.TalismaGuerreiro)}

			_, err := r.PerformRitual("alice", RitualRequest{CardRef: rc.InstanceID, TargetPlayerID: "bob"})
			assert.ErrorIs(t, err, ErrPreconditionNotMet)
			assert.Len(t, bob.Talismans, 1)
			assert.GreaterOrEqual(t, alice.handIndex(rc.InstanceID), 0)
		})
	}
}

func TestRitual157StealsAllTalismans(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	ritual157Board(t, alice)
	rc := loose(t, cards.Ritual157)
	alice.Hand = append(alice.Hand, rc)
	stolen := []*Card{loose(t, cards.TalismaGuerreiro), loose(t, cards.TalismaImortalidade)}
	bob.Talismans = append([]*Card{}, stolen...)

	res, err := r.PerformRitual("alice", RitualRequest{CardRef: rc.InstanceID, TargetPlayerID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TalismansStolen)
	assert.True(t, res.UsedCard)
	assert.Empty(t, bob.Talismans)
	assert.Equal(t, stolen, alice.Talismans)
	assert.Equal(t, -1, alice.handIndex(rc.InstanceID))
	assert.NotNil(t, r.Graveyard.Find(rc.InstanceID))

	_, err = r.PerformRitual("alice", RitualRequest{CardRef: cards.Ritual157, TargetPlayerID: "bob"})
	assert.ErrorIs(t, err, ErrActionAlreadyUsed)
}

func TestRitual157BlockedByNymph(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	ritual157Board(t, alice)
	rc := loose(t, cards.Ritual157)
	alice.Hand = append(alice.Hand, rc)
	bob.Defense[0] = loose(t, cards.Ninfa)
	bob.Talismans = []*Card{loose(t, cards.TalismaOrdem)}

	_, err := r.PerformRitual("alice", RitualRequest{CardRef: rc.InstanceID, TargetPlayerID: "bob"})
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
	assert.Len(t, bob.Talismans, 1)
}

func TestRitualWithoutCardNeedsMagoNegroOnBoard(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice, bob := r.Players["alice"], r.Players["bob"]
	ritual157Board(t, alice)
	bob.Talismans = []*Card{loose(t, cards.TalismaOrdem)}

	_, err := r.PerformRitual("alice", RitualRequest{CardRef: cards.Ritual157, TargetPlayerID: "bob"})
	assert.ErrorIs(t, err, ErrCardNotFound, "Mago Negro in hand does not grant the right")

	alice.takeFromHand(alice.handCard(cards.MagoNegro).InstanceID)
	alice.Defense[5] = loose(t, cards.MagoNegro)
	res, err := r.PerformRitual("alice", RitualRequest{CardRef: cards.Ritual157, TargetPlayerID: "bob"})
	require.NoError(t, err)
	assert.False(t, res.UsedCard)
	assert.Len(t, alice.Talismans, 1)
}

func TestRitualAmorLiftsProphecy(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice := r.Players["alice"]
	rc := loose(t, cards.RitualAmor)
	alice.Hand = []*Card{rc}
	alice.Defense[0] = loose(t, cards.Ninfa)

	_, err := r.PerformRitual("alice", RitualRequest{CardRef: rc.InstanceID})
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "needs Vampiro Tayler too")

	alice.Hand = append(alice.Hand, loose(t, cards.VampiroTayler))
	_, err = r.PerformRitual("alice", RitualRequest{CardRef: rc.InstanceID})
	assert.ErrorIs(t, err, ErrPreconditionNotMet, "no curse to lift")

	alice.ProphecyTarget = alice.Defense[0].InstanceID
	alice.ProphecyTurns = 1
	res, err := r.PerformRitual("alice", RitualRequest{CardRef: rc.InstanceID})
	require.NoError(t, err)
	assert.True(t, res.ProphecyLifted)
	assert.Empty(t, alice.ProphecyTarget)
	assert.Zero(t, alice.ProphecyTurns)
}

func TestReviveNeedsFourRunes(t *testing.T) {
	r := newTestRoom(t, "alice", "bob")
	alice := r.Players["alice"]
	alice.Hand = nil
	for i := 0; i < 3; i++ {
		alice.Hand = append(alice.Hand, loose(t, cards.Runa))
	}
	dragon := withStats(t, cards.Dragao, 12, 1)
	r.Graveyard.PushTop(dragon)

	_, err := r.Revive("alice", dragon.InstanceID)
	assert.ErrorIs(t, err, ErrPreconditionNotMet)
	assert.Len(t, alice.Hand, 3)

	alice.Hand = append(alice.Hand, loose(t, cards.Runa), loose(t, cards.Runa))
	_, err = r.Revive("alice", "missing")
	assert.ErrorIs(t, err, ErrCardNotFound)

	res, err := r.Revive("alice", dragon.InstanceID)
	require.NoError(t, err)
	assert.Equal(t, 4, res.RunesSpent)
	assert.Equal(t, 1, res.RunesInHand)
	assert.Equal(t, 5000, res.Card.Life, "revived at catalog life")
	assert.Equal(t, 1500, dragon.Attack)
	require.Len(t, alice.Hand, 2)
	assert.Same(t, dragon, alice.Hand[1])
	assert.Nil(t, r.Graveyard.Find(dragon.InstanceID))

	runes := 0
	for _, c := range r.Graveyard.Cards() {
		if c.TemplateID == cards.Runa {
			runes++
		}
	}
	assert.Equal(t, 4, runes)
}
