package cards

import "sort"

// Category is the rules family a card template belongs to.
type Category string

const (
	Creature Category = "creature"
	Weapon   Category = "weapon"
	Armor    Category = "armor"
	Talisman Category = "talisman"
	Rune     Category = "rune"
	Spell    Category = "spell"
	Oracle   Category = "oracle"
	Ritual   Category = "ritual"
	Trap     Category = "trap"
)

// IsItem reports whether cards of this category attach to creatures or equipment slots.
func (c Category) IsItem() bool {
	return c == Weapon || c == Armor
}

// Template ids referenced by rules code.
const (
	Elfo          = "elfo"
	Zumbi         = "zumbi"
	Medusa        = "medusa"
	VampiroTayler = "vampiro_tayler"
	VampiroWers   = "vampiro_wers"
	Profeta       = "profeta"
	MagoNegro     = "mago_negro"
	Apollo        = "apollo"
	Apofis        = "apofis"
	Leviatan      = "leviatan"
	Mago          = "mago"
	Ninfa         = "ninfa"
	Centauro      = "centauro"
	SuperCentauro = "super_centauro"
	ReiMago       = "rei_mago"
	Dragao        = "dragao"
	Fenix         = "fenix"

	LaminaAlmas    = "lamina_almas"
	BladeVampires  = "blade_vampires"
	BladeDragons   = "blade_dragons"
	CapaceteTrevas = "capacete_trevas"

	TalismaOrdem        = "talisma_ordem"
	TalismaImortalidade = "talisma_imortalidade"
	TalismaVerdade      = "talisma_verdade"
	TalismaGuerreiro    = "talisma_guerreiro"

	Runa = "runa"

	FeiticoCortes      = "feitico_cortes"
	FeiticoDuroMatar   = "feitico_duro_matar"
	FeiticoTroca       = "feitico_troca"
	FeiticoComunista   = "feitico_comunista"
	FeiticoSilencio    = "feitico_silencio"
	FeiticoParaSempre  = "feitico_para_sempre"
	FeiticoCapitalista = "feitico_capitalista"
	FeiticoCura        = "feitico_cura"

	Oraculo = "oraculo"

	Ritual157  = "ritual_157"
	RitualAmor = "ritual_amor"

	Armadilha51      = "armadilha_51"
	Armadilha171     = "armadilha_171"
	ArmadilhaEspelho = "armadilha_espelho"
	ArmadilhaCheat   = "armadilha_cheat"
)

// Template is the immutable description of a card. Instances copy these values at deck-build time.
type Template struct {
	ID          string
	Name        string
	Category    Category
	Life        int
	Attack      int
	Protection  int // armor only: life granted to the creature wearing it
	Count       int // copies in a freshly built deck
	Description string
	// DiesAtDaylight marks undead creatures that go to the graveyard when day breaks.
	DiesAtDaylight bool
}

var catalog = map[string]Template{
	Elfo:          {ID: Elfo, Name: "Elfo", Category: Creature, Life: 512, Attack: 512, Count: 40, Description: "Não ataca outros elfos. Use para realizar oraculos."},
	Zumbi:         {ID: Zumbi, Name: "Zumbi", Category: Creature, Life: 100, Attack: 100, Count: 30, Description: "Morre durante o dia. A menos que derrotado por outro zumbi volta para a mão do jogador.", DiesAtDaylight: true},
	Medusa:        {ID: Medusa, Name: "Medusa", Category: Creature, Life: 1024, Attack: 150, Count: 1, Description: "Seu ataque transforma personagens em pedra. Cartas com maior vida são imunes."},
	VampiroTayler: {ID: VampiroTayler, Name: "Vampiro - Necrothic Tayler", Category: Creature, Life: 512, Attack: 100, Count: 1, Description: "Rouba a vida do oponente para recuperar a vida de seu jogador.", DiesAtDaylight: true},
	VampiroWers:   {ID: VampiroWers, Name: "Vampiro - Benjamim Wers", Category: Creature, Life: 512, Attack: 250, Count: 1, Description: "Mata todos os centauros em campo dos oponentes e entrega a vida a jogador.", DiesAtDaylight: true},
	Profeta:       {ID: Profeta, Name: "Profeta", Category: Creature, Life: 256, Attack: 50, Count: 1, Description: "Anuncia a morte de um monstro para duas rodadas a frente. A maldição pode ser retirada caso o jogador seja derrotado."},
	MagoNegro:     {ID: MagoNegro, Name: "Mago Negro", Category: Creature, Life: 2000, Attack: 1500, Count: 1, Description: "Não se subordina ao Rei Mago. Realiza rituais sem possuir a carta"},
	Apollo:        {ID: Apollo, Name: "Apollo", Category: Creature, Life: 8200, Attack: 2000, Count: 1, Description: "Ataques sofridos com menos de 5k de dano recuperam a vida do jogador se colocado na defesa, não pode ficar na defesa por mais de 5 rodadas. Durante o dia pode revelar cartas em jogo do oponente."},
	Apofis:        {ID: Apofis, Name: "Apofis", Category: Creature, Life: 32500, Attack: 5000, Count: 1, Description: "Rei do Caos. Pode desativar armadilhas e magias de outros jogadores."},
	Leviatan:      {ID: Leviatan, Name: "Leviatã", Category: Creature, Life: 15000, Attack: 15000, Count: 1, Description: "Imune a elementais de fogo. Só pode ser domado por deuses e magos supremos."},
	Mago:          {ID: Mago, Name: "Mago", Category: Creature, Life: 800, Attack: 300, Count: 25, Description: "Use-o para invocar feitiços."},
	Ninfa:         {ID: Ninfa, Name: "Ninfa - Belly Lorem", Category: Creature, Life: 512, Attack: 128, Count: 1, Description: "Torna o jogador imune a rituais."},
	Centauro:      {ID: Centauro, Name: "Centauro", Category: Creature, Life: 512, Attack: 150, Count: 35, Description: "O jogador pode colocar personagens para montar no centauro. Realiza qualquer ataque terrestre."},
	SuperCentauro: {ID: SuperCentauro, Name: "Super Centauro", Category: Creature, Life: 600, Attack: 256, Count: 5, Description: "Apenas ataques diretos. Pode encantar centauros de outros jogadores e pegar eles para a sua mão (os centauros que estão em campo)"},
	ReiMago:       {ID: ReiMago, Name: "Rei Mago", Category: Creature, Life: 2000, Attack: 1500, Count: 1, Description: "Pode impedir outros magos de realizar feitiços. Realiza feitiços sem possuir a carta."},
	Dragao:        {ID: Dragao, Name: "Dragão", Category: Creature, Life: 5000, Attack: 1500, Count: 3, Description: "Seu ataque incendeia o inimigo, com isso ele toma 50 de danos nas próximas rodadas do fogo."},
	Fenix:         {ID: Fenix, Name: "Fênix", Category: Creature, Life: 32500, Attack: 10000, Count: 1, Description: "Grande ave com ataque de fogo, pode mudar de dia para noite e vice-versa quando bem entender."},

	LaminaAlmas:    {ID: LaminaAlmas, Name: "Lâmina das Almas", Category: Weapon, Count: 1, Description: "Assume o dano de uma carta do cemitério. Só pode ser equipado por Elfos, magos e vampiros."},
	BladeVampires:  {ID: BladeVampires, Name: "Blade of Vampires", Category: Weapon, Attack: 5000, Count: 1, Description: "Só pode ser usada por um vampiro. Seu ataque torna o oponente noturno (morre de dia)"},
	BladeDragons:   {ID: BladeDragons, Name: "Blade of Dragons", Category: Weapon, Attack: 5000, Count: 1, Description: "Usada apenas por elfos ou vampiros. Seu ataque pode eliminar personagens permanentemente tornando impossíveis de reviver ou ser invocados de volta do cemitério."},
	CapaceteTrevas: {ID: CapaceteTrevas, Name: "Capacete das Trevas", Category: Armor, Protection: 800, Count: 15, Description: "Impede o dano da luz do dia em mortos-vivos e a proteção é adicionada a carta."},

	TalismaOrdem:        {ID: TalismaOrdem, Name: "Talismã - Ordem", Category: Talisman, Count: 1, Description: "Imunidade ao Caos."},
	TalismaImortalidade: {ID: TalismaImortalidade, Name: "Talismã - Imortalidade", Category: Talisman, Count: 1, Description: "Se o jogador for morto com este item em mãos ele terá seus pontos de vida restaurados."},
	TalismaVerdade:      {ID: TalismaVerdade, Name: "Talismã - Verdade", Category: Talisman, Count: 1, Description: "Imunidade a feitiços e oráculos."},
	TalismaGuerreiro:    {ID: TalismaGuerreiro, Name: "Talismã - Guerreiro", Category: Talisman, Count: 1, Description: "Aumenta em 1000 pontos o ataque e defesa do jogador."},

	Runa: {ID: Runa, Name: "Runa", Category: Rune, Count: 20, Description: "Colete quatro runas para realizar uma invocação de um personagem do cemitério."},

	FeiticoCortes:      {ID: FeiticoCortes, Name: "Feitiço - Cortes", Category: Spell, Count: 1, Description: "Aumenta ataque de um monstro em 1024 pontos."},
	FeiticoDuroMatar:   {ID: FeiticoDuroMatar, Name: "Feitiço - Duro de matar", Category: Spell, Count: 1, Description: "Aumenta defesa do jogador em 1024 pontos."},
	FeiticoTroca:       {ID: FeiticoTroca, Name: "Feitiço - Troca", Category: Spell, Count: 1, Description: "Troca as cartas do Jogador de defesa para ataque e vice-versa de um jogador."},
	FeiticoComunista:   {ID: FeiticoComunista, Name: "Feitiço - Comunista", Category: Spell, Count: 1, Description: "Faz as cartas das mãos dos jogadores irem de volta para a pilha."},
	FeiticoSilencio:    {ID: FeiticoSilencio, Name: "Feitiço - Silêncio", Category: Spell, Count: 1, Description: "Os ataques das próximas duas rodadas não ativam armadilhas."},
	FeiticoParaSempre:  {ID: FeiticoParaSempre, Name: "Feitiço - Para Sempre", Category: Spell, Count: 1, Description: "Reverte o efeito da espada Blade of Vampires."},
	FeiticoCapitalista: {ID: FeiticoCapitalista, Name: "Feitiço - Capitalista", Category: Spell, Count: 1, Description: "Troque cartas com outros jogadores."},
	FeiticoCura:        {ID: FeiticoCura, Name: "Feitiço - Cura", Category: Spell, Count: 2, Description: "Recupera 1000 pontos de vida de um jogador."},

	Oraculo: {ID: Oraculo, Name: "Oráculo", Category: Oracle, Count: 1, Description: "Mate o oponente com o talismã da imortalidade três vezes para que ele seja derrotado permanentemente, seja rápido antes que ele junte todos os talismãs."},

	Ritual157:  {ID: Ritual157, Name: "Ritual 157", Category: Ritual, Count: 1, Description: "Requer Apofis, Mago Negro, 6 zumbis e 2 elfos em modo de defesa. Todos os talismãs da mão do jogador escolhido são roubados."},
	RitualAmor: {ID: RitualAmor, Name: "Ritual Amor", Category: Ritual, Count: 1, Description: "Requer a Ninfa Belly Lorem e o Vampiro Necrothic Tayler. Anula a maldição do Profeta."},

	Armadilha51:      {ID: Armadilha51, Name: "Armadilha 51", Category: Trap, Count: 1, Description: "Faz o exército do outro jogador ficar bêbado e atacar aliados."},
	Armadilha171:     {ID: Armadilha171, Name: "Armadilha 171", Category: Trap, Count: 1, Description: "Rouba a carta que te dá um golpe crítico."},
	ArmadilhaEspelho: {ID: ArmadilhaEspelho, Name: "Armadilha Espelho", Category: Trap, Count: 1, Description: "Reverte ataques e magia."},
	ArmadilhaCheat:   {ID: ArmadilhaCheat, Name: "Armadilha Cheat", Category: Trap, Count: 1, Description: "Dobrar o ataque e passar para o próximo jogador na rodada, precisa estar de noite e um mago em campo."},
}

// Lookup returns the template with the given id.
func Lookup(id string) (Template, bool) {
	t, ok := catalog[id]
	return t, ok
}

// All returns every template sorted by id so deck construction is reproducible for a given shuffle seed.
func All() []Template {
	out := make([]Template, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DeckSize is the number of instances a full deck holds.
func DeckSize() int {
	n := 0
	for _, t := range catalog {
		n += t.Count
	}
	return n
}

// IsVampire reports whether the template id is one of the vampire creatures.
func IsVampire(id string) bool {
	return id == VampiroTayler || id == VampiroWers
}

// IsMageClass reports whether the creature can channel spells.
func IsMageClass(id string) bool {
	return id == Mago || id == ReiMago || id == MagoNegro
}

// IsSpellProxy reports whether the creature may cast spells it does not hold.
func IsSpellProxy(id string) bool {
	return id == ReiMago || id == MagoNegro
}
