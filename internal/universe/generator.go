// Fighter generation for universe bootstrap: a seeded generator producing
// a full roster spread across divisions, with attribute distributions that
// leave a visible elite tier and a deep journeyman middle.
package universe

import (
	"fmt"
	"math/rand"
	"time"

	"boxingsim/internal/fighter"
)

var firstNames = []string{
	"Ray", "Tommy", "Marcus", "Deontay", "Errol", "Saul", "Oscar", "Felix",
	"Miguel", "Juan", "Carlos", "Roberto", "Manny", "Floyd", "Bernard",
	"Evander", "Riddick", "Lennox", "Vitali", "Wladimir", "Gennady",
	"Vasyl", "Terence", "Shawn", "Keith", "Danny", "Adrien", "Gervonta",
	"Ryan", "Devin", "Teofimo", "Shakur", "Jaron", "David", "Callum",
	"Billy", "Chris", "Anthony", "Tyson", "Dillian", "Joe", "Carl",
	"Josh", "Amir", "Kell", "Liam", "Jarrell", "Luis", "Andy", "Efe",
}

var lastNames = []string{
	"Solano", "Duran", "Vargas", "Morales", "Barrera", "Marquez",
	"Gonzalez", "Castillo", "Herrera", "Mendoza", "Rios", "Ortiz",
	"Ramirez", "Santos", "Silva", "Costa", "Pereira", "Oliveira",
	"Walker", "Johnson", "Williams", "Brown", "Davis", "Miller",
	"Wilson", "Taylor", "Thomas", "Jackson", "White", "Harris",
	"Kowalski", "Nowak", "Petrov", "Ivanov", "Volkov", "Kuznetsov",
	"Usyk", "Lomachenko", "Golovkin", "Bivol", "Beterbiev", "Gassiev",
	"Okafor", "Adeyemi", "Mensah", "Osei", "Toure", "Diallo", "Keita",
	"Fury", "Whyte", "Chisora", "Joyce", "Dubois", "Wood", "Edwards",
}

var nicknames = []string{
	"The Hammer", "Sugar", "Lights Out", "The Ghost", "Iron", "Kid Dynamite",
	"The Professor", "El Matador", "The Executioner", "Thunder", "Showtime",
	"The Truth", "Golden Boy", "The Destroyer", "Hands of Stone", "The Cobra",
	"King", "The Bodysnatcher", "Quicksilver", "The Surgeon",
}

// divisionBuild bounds the physical profile generated per weight class.
type divisionBuild struct {
	minHeight, maxHeight int // cm
	minWeight, maxWeight int // kg
}

var divisionBuilds = map[string]divisionBuild{
	"Heavyweight":         {185, 205, 100, 130},
	"Cruiserweight":       {182, 198, 86, 91},
	"Light Heavyweight":   {178, 193, 76, 79},
	"Super Middleweight":  {175, 190, 73, 76},
	"Middleweight":        {172, 188, 70, 72},
	"Super Welterweight":  {170, 185, 67, 69},
	"Welterweight":        {168, 183, 64, 66},
	"Super Lightweight":   {165, 180, 61, 63},
	"Lightweight":         {163, 178, 59, 61},
	"Super Featherweight": {160, 175, 57, 58},
	"Featherweight":       {158, 172, 55, 57},
	"Bantamweight":        {155, 170, 52, 53},
	"Flyweight":           {152, 167, 50, 51},
}

// attr draws one attribute score around a mean with the given spread,
// clamped to [1,100].
func attr(rng *rand.Rand, mean, spread float64) int {
	v := int(mean + rng.NormFloat64()*spread)
	if v < 1 {
		v = 1
	}
	if v > 100 {
		v = 100
	}
	return v
}

// GenerateFighter creates one fighter for a division. tier in [0,1]
// shifts the whole attribute profile: 0 is a journeyman, 1 a generational
// talent.
func GenerateFighter(rng *rand.Rand, division string, now time.Time, tier float64) *fighter.Fighter {
	name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
	f := fighter.New(name)
	f.Division = division

	if rng.Float64() < 0.25 {
		f.Nickname = nicknames[rng.Intn(len(nicknames))]
	}
	if rng.Float64() < 0.12 {
		f.Stance = fighter.Southpaw
	}

	build, ok := divisionBuilds[division]
	if !ok {
		build = divisionBuilds["Middleweight"]
	}
	f.HeightCM = build.minHeight + rng.Intn(build.maxHeight-build.minHeight+1)
	f.WeightKG = build.minWeight + rng.Intn(build.maxWeight-build.minWeight+1)
	f.ReachCM = f.HeightCM + rng.Intn(13) - 2

	ageYears := 18 + rng.Intn(17) // 18..34 at generation time
	ageDays := rng.Intn(365)
	f.DateOfBirth = now.AddDate(-ageYears, 0, -ageDays)

	mean := 45 + tier*30 // 45 for journeymen up to 75 for elites
	spread := 12.0

	f.Power = fighter.Power{
		Left:     attr(rng, mean, spread),
		Right:    attr(rng, mean+3, spread),
		Knockout: attr(rng, mean, spread+3),
	}
	f.Speed = fighter.Speed{
		Hand:     attr(rng, mean, spread),
		Foot:     attr(rng, mean, spread),
		Reflexes: attr(rng, mean, spread),
	}
	f.Stamina = fighter.Stamina{
		Cardio:   attr(rng, mean+5, spread),
		Recovery: attr(rng, mean, spread),
	}
	f.Defense = fighter.Defense{
		HeadMovement: attr(rng, mean, spread),
		Blocking:     attr(rng, mean, spread),
	}
	f.Mental = fighter.Mental{
		Chin:           attr(rng, mean+5, spread),
		Heart:          attr(rng, mean+10, spread),
		KillerInstinct: attr(rng, mean, spread),
	}
	f.Technical = fighter.Technical{
		Accuracy:        attr(rng, mean, spread),
		FightIQ:         attr(rng, mean, spread),
		RingGeneralship: attr(rng, mean, spread),
	}

	styles := []fighter.PrimaryStyle{
		fighter.OutBoxer, fighter.Swarmer, fighter.Slugger, fighter.BoxerPuncher,
		fighter.CounterPuncher, fighter.InsideFighter, fighter.VolumePuncher,
		fighter.SwitchHitter,
	}
	f.Style = fighter.Style{Primary: styles[rng.Intn(len(styles))]}

	f.PromoterID = fmt.Sprintf("promoter-%02d", rng.Intn(20))
	f.TrainerID = fmt.Sprintf("trainer-%02d", rng.Intn(40))

	return f
}

// GenerateRoster fills a universe with n fighters spread evenly across all
// divisions. Roughly one fighter in eight draws an elevated tier, so each
// division develops a contender class above its journeyman base. progress,
// if non-nil, is invoked every few dozen fighters so a host UI can observe
// generation without the loop blocking on it.
func GenerateRoster(u *Universe, rng *rand.Rand, n int, progress func(done, total int)) {
	now := u.Date.AsOf()
	for i := 0; i < n; i++ {
		division := DivisionNames[i%len(DivisionNames)]
		tier := rng.Float64() * 0.5
		if rng.Float64() < 0.125 {
			tier = 0.5 + rng.Float64()*0.5
		}
		u.AddFighter(GenerateFighter(rng, division, now, tier))

		if progress != nil && (i+1)%50 == 0 {
			progress(i+1, n)
		}
	}
	if progress != nil {
		progress(n, n)
	}
}
