// Package tunables centralizes the gameplay coefficients that drive the
// combat resolver, stamina, and scoring formulas.
//
// IMPORTANT: When changing balance values, only modify this file.
// All other packages should reference the Table passed to them.
package tunables

// Table holds every numeric coefficient used outside the fixed combat
// rules. Keeping them in one struct makes the formulas in
// internal/resolver and internal/scoring calibratable without touching
// control flow, and lets tests pin edge cases deterministically.
type Table struct {
	// Hit probability (internal/resolver)
	BaseHitChance        float64 // starting probability before modifiers
	AccuracyWeight       float64 // attacker.technical.accuracy contribution
	SpeedAdvantageWeight float64 // attacker speed vs defender reflex contribution
	DefenseWeight        float64 // defender.defense contribution (negative)
	StaminaHitPenalty    float64 // defender stamina loss -> easier to hit
	MinHitChance         float64
	MaxHitChance         float64

	// Damage (internal/resolver)
	BaseDamageScale   float64 // scales power -> damage fraction per punch
	CounterBonus      float64 // multiplier added when a punch lands as a counter
	ChinResistanceDiv float64 // divisor applied against mental.chin
	BodyStaminaDrain  float64 // extra stamina drained by body punches
	HeadDamageWeight  float64
	BodyDamageWeight  float64

	// Knockdown / hurt rolls (internal/resolver)
	KnockdownBase         float64
	KnockdownDamageWeight float64
	KnockdownCumWeight    float64 // weight on cumulative head damage
	KnockdownChinDivisor  float64
	KnockdownHeartDivisor float64
	KnockdownStaggerBonus float64 // bonus when defender already HURT/STUNNED
	HurtThresholdRatio    float64 // hurt roll divides the knockdown base+damage terms by this ratio

	// Stamina (internal/stamina)
	StaminaDrainJab       float64
	StaminaDrainPower     float64
	StaminaPassiveDrain   float64 // per tick, regardless of action
	StaminaRecoveryRate   float64 // once per rest interval, scaled by the recovery attribute
	GassedThreshold       float64
	GassedAccuracyPenalty float64
	GassedPowerPenalty    float64

	// Scoring (internal/scoring)
	JudgeVarianceBand      float64 // +/- fraction applied per judge
	MemorableMomentBand    float64 // +/- fraction, random per round
	SwingRoundChance       float64
	SwingRoundBand         float64
	BalancingNudgeGap      int // card-gap threshold before nudging trailing fighter
	BalancingNudgeAmount   float64
	MinorityUpsetChance    float64
	StaggerBonusPerStagger float64
	AdvantageClampLow      float64
	AdvantageClampHigh     float64

	// Foul detection (internal/foul)
	FoulRates               map[string]float64 // per foul kind, chance per candidate tick
	DeductionDQCount        int
	WarningsBeforeDeduction int

	// Recovery-from-knockdown (internal/fight)
	RecoveryHeartWeight      float64
	RecoveryTimeWeight       float64
	RecoveryDamagePenalty    float64
	RecoveryKnockdownPenalty float64

	// Universe (internal/universe)
	PeakAgeStart          int
	PeakAgeEnd            int
	DeclineRate           float64
	ChinErosionRate       float64
	RankingBaseWeight     float64
	RankingFormWeight     float64
	RankingBodyBiasSpread float64
	HOFScoreThreshold     float64
	RetirementAgeSoft     int
	RetirementAgeHard     int
}

// Default returns the calibrated coefficient table used by the production
// simulation. Values were chosen so that league-wide statistical invariants
// (knockout rates, decision splits, round counts) hold over a batch of
// seeds; individual fields are overridden in unit tests exercising edge
// cases (e.g. zeroing KnockdownBase so a test's hits never end in a
// knockdown).
func Default() Table {
	return Table{
		BaseHitChance:        0.55,
		AccuracyWeight:       0.30,
		SpeedAdvantageWeight: 0.15,
		DefenseWeight:        0.35,
		StaminaHitPenalty:    0.20,
		MinHitChance:         0.05,
		MaxHitChance:         0.95,

		BaseDamageScale:   0.0005,
		CounterBonus:      0.5,
		ChinResistanceDiv: 100.0,
		BodyStaminaDrain:  0.012,
		HeadDamageWeight:  1.0,
		BodyDamageWeight:  0.8,

		KnockdownBase:         0.01,
		KnockdownDamageWeight: 3.0,
		KnockdownCumWeight:    0.3,
		KnockdownChinDivisor:  400.0,
		KnockdownHeartDivisor: 700.0,
		KnockdownStaggerBonus: 0.15,
		HurtThresholdRatio:    2.2,

		StaminaDrainJab:       0.002,
		StaminaDrainPower:     0.004,
		StaminaPassiveDrain:   0.0002,
		StaminaRecoveryRate:   0.12,
		GassedThreshold:       0.25,
		GassedAccuracyPenalty: 0.2,
		GassedPowerPenalty:    0.25,

		JudgeVarianceBand:      0.10,
		MemorableMomentBand:    0.15,
		SwingRoundChance:       0.20,
		SwingRoundBand:         0.10,
		BalancingNudgeGap:      3,
		BalancingNudgeAmount:   0.04,
		MinorityUpsetChance:    0.10,
		StaggerBonusPerStagger: 30.0,
		AdvantageClampLow:      0.25,
		AdvantageClampHigh:     0.75,

		FoulRates: map[string]float64{
			"low_blow":         0.004,
			"rabbit_punch":     0.003,
			"headbutt":         0.002,
			"holding":          0.006,
			"hitting_on_break": 0.003,
		},
		DeductionDQCount:        3,
		WarningsBeforeDeduction: 1,

		RecoveryHeartWeight:      0.55,
		RecoveryTimeWeight:       0.10,
		RecoveryDamagePenalty:    0.35,
		RecoveryKnockdownPenalty: 0.15,

		PeakAgeStart:          24,
		PeakAgeEnd:            32,
		DeclineRate:           0.6,
		ChinErosionRate:       0.015,
		RankingBaseWeight:     0.7,
		RankingFormWeight:     0.3,
		RankingBodyBiasSpread: 3.0,
		HOFScoreThreshold:     70.0,
		RetirementAgeSoft:     36,
		RetirementAgeHard:     42,
	}
}
