// Package types defines the shared data structures for the Castle Defense
// engine. This package contains only type definitions — no logic, no methods.
package types

// Result is the output of one interpreted command.
type Result struct {
	Output []string
}

// Vec2 is a 2D position in field coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// TowerClass identifies one of the closed set of tower types.
type TowerClass string

const (
	ClassArcher TowerClass = "Archer" // single target, fast
	ClassSniper TowerClass = "Sniper" // single target, heavy
	ClassSplash TowerClass = "Splash" // area damage
	ClassFrozen TowerClass = "Frozen" // damage plus slow
)

// TowerDef is the base configuration for one tower class.
type TowerDef struct {
	Class       TowerClass
	Damage      float64
	AttackSpeed float64 // attacks per second
	Range       float64
	AoERadius   float64 // Splash only
	SlowFactor  float64 // Frozen only, 0..1 fraction of speed removed
	SlowDur     float64 // Frozen only, seconds
	Cost        map[string]int
	CoinCost    int // Monster Coins to place
}

// ItemEffectKind selects how an equipped item modifies a tower.
type ItemEffectKind string

const (
	EffectArea   ItemEffectKind = "area"   // AoE/range multiplier, splash on single-target towers
	EffectHeal   ItemEffectKind = "heal"   // converts a fraction of damage dealt into castle healing
	EffectBounce ItemEffectKind = "bounce" // chance to bounce the projectile to a second target
)

// ItemDef is the effect descriptor for one equippable item.
type ItemDef struct {
	Name          string
	Description   string
	Kind          ItemEffectKind
	AoEMultiplier float64      // area: multiplier for AoE radius (Splash) or range (Frozen)
	SplashRadius  float64      // area: splash radius granted to single-target towers
	HealPercent   float64      // heal: fraction of damage dealt returned as healing
	BounceChance  float64      // bounce: probability in [0,1]
	Compatible    []TowerClass // bounce: classes the effect applies to; empty = all
	Cost          map[string]int
	Glow          string // cosmetic highlight tag
}

// MonsterDef is the base configuration for one regular monster type.
type MonsterDef struct {
	Type    string
	Health  float64
	Speed   float64
	Damage  float64
	Flying  bool
	MinWave int // first wave this type may spawn on
	Loot    LootTable
}

// BossDef is the base configuration for one boss type.
type BossDef struct {
	Type   string
	Health float64
	Speed  float64
	Damage float64
	Loot   LootTable
}

// LootEntry is a single weighted, wave-scaled drop descriptor.
// Immutable after construction.
type LootEntry struct {
	Resource        string
	BaseChance      float64 // base drop probability in [0,1]
	MinQuantity     float64
	MaxQuantity     float64
	ChanceScaling   float64 // added to chance per wave past the first
	QuantityScaling float64 // added to both quantity bounds per wave past the first
}

// LootTable is the ordered drop list for one source-entity type.
type LootTable struct {
	Entries []LootEntry
}

// Balance holds the tunable balance constants. Mutated only through the
// engine's explicit balance API, never from ambient call sites.
type Balance struct {
	UpgradeCostGrowth float64 // resource cost multiplier per upgrade level
	CoinCostGrowth    float64 // Monster Coin cost multiplier per upgrade level
	DamageGrowth      float64 // base damage multiplier per damage upgrade
	AttackSpeedGrowth float64
	RangeGrowth       float64
	AoEGrowth         float64
	SlowGrowth        float64
	WaveDifficulty    float64 // monster health/damage growth applied every 5 waves
	SpawnBase         int     // monsters on wave 1
	SpawnInterval     float64 // seconds between spawns
	BossWaveEvery     int     // every Nth wave is a boss wave
}

// GameDef holds game metadata and global configuration from Lua.
type GameDef struct {
	Title        string
	Version      string
	Intro        string
	Width        float64 // field width; monsters spawn along the top edge
	Height       float64 // field height; the castle sits at the bottom center
	CastleHealth float64
	Resources    []string       // the closed set of resource types
	Initial      map[string]int // starting ledger contents
	CoinResource string         // resource charged for placements and upgrades
	Balance      Balance
}

// DerivedStats are the tower attributes recomputed from base stats plus
// equipped items. Never persisted — always rebuilt through the pipeline.
type DerivedStats struct {
	Damage      float64
	AttackSpeed float64
	Range       float64
	AoERadius   float64 // Splash
	SlowFactor  float64 // Frozen
	SlowDur     float64 // Frozen

	SplashEnabled bool
	SplashRadius  float64
	BounceEnabled bool
	BounceChance  float64
	HealPercent   float64

	Glow           string // cosmetic only
	HasItemEffects bool   // cosmetic only; never gates gameplay
}

// TowerSlots is the number of item slots on every tower.
const TowerSlots = 2

// Tower is the runtime state of one placed tower. Base stats change only
// through upgrades; Derived is owned by the item effect pipeline.
type Tower struct {
	ID    string
	Class TowerClass
	Pos   Vec2

	BaseDamage      float64
	BaseAttackSpeed float64
	BaseRange       float64
	BaseAoERadius   float64
	BaseSlowFactor  float64
	BaseSlowDur     float64

	DamageLevel      int
	AttackSpeedLevel int
	RangeLevel       int
	ExtraLevel       int // AoE level (Splash) or slow level (Frozen)

	Slots [TowerSlots]string // equipped item names; "" = empty slot

	Derived  DerivedStats
	Cooldown float64 // seconds until the next attack
}

// Monster is the runtime state of one hostile entity.
type Monster struct {
	ID        string
	Type      string
	Boss      bool
	Health    float64
	MaxHealth float64
	Damage    float64
	Speed     float64
	Pos       Vec2
	Flying    bool
	Dead      bool
	Wave      int // wave the monster spawned on

	SlowFactor  float64 // multiplier on speed; 1.0 = unaffected
	SlowTimer   float64 // seconds of slow remaining
	AtCastle    bool
	AttackTimer float64
}
