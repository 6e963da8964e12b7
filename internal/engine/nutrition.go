package engine

import (
	"strings"
	"time"
)

// TargetPreset is a named pair of goal and seasonal adjustment tables.
type TargetPreset struct {
	Name     string
	goals    map[Goal]NutritionTarget
	seasonal map[Season]NutritionTarget
}

// ProfilePreset is used for profile-level recommendations (daily targets).
var ProfilePreset = TargetPreset{
	Name: "profile",
	goals: map[Goal]NutritionTarget{
		GoalGainWeight:         {CalorieDelta: 500, ProteinDeltaPerKg: 1.8, CarbDeltaPerKg: 6, FatDeltaPerKg: 1.2},
		GoalLoseWeight:         {CalorieDelta: -500, ProteinDeltaPerKg: 2.0, CarbDeltaPerKg: 4, FatDeltaPerKg: 1.0},
		GoalBuildMuscle:        {CalorieDelta: 300, ProteinDeltaPerKg: 2.2, CarbDeltaPerKg: 5, FatDeltaPerKg: 1.0},
		GoalImprovePerformance: {CalorieDelta: 200, ProteinDeltaPerKg: 1.8, CarbDeltaPerKg: 7, FatDeltaPerKg: 1.2},
		GoalMaintainWeight:     {CalorieDelta: 0, ProteinDeltaPerKg: 1.6, CarbDeltaPerKg: 5, FatDeltaPerKg: 1.0},
	},
	seasonal: map[Season]NutritionTarget{
		SeasonInseason:   {CalorieDelta: 300, CarbDeltaPerKg: 1},
		SeasonPreSeason:  {CalorieDelta: 200, ProteinDeltaPerKg: 0.2},
		SeasonPostSeason: {CalorieDelta: -200},
		SeasonOffseason:  {},
	},
}

// ConversationPreset is used when composing meals inside a conversation.
// Its magnitudes are smaller than ProfilePreset and the two tables do not
// agree.
var ConversationPreset = TargetPreset{
	Name: "conversation",
	goals: map[Goal]NutritionTarget{
		GoalGainWeight:         {CalorieDelta: 300, ProteinDeltaPerKg: 0.2, CarbDeltaPerKg: 1},
		GoalLoseWeight:         {CalorieDelta: -300, ProteinDeltaPerKg: 0.3, CarbDeltaPerKg: -1},
		GoalBuildMuscle:        {CalorieDelta: 200, ProteinDeltaPerKg: 0.4, CarbDeltaPerKg: 0.5},
		GoalImprovePerformance: {CalorieDelta: 150, ProteinDeltaPerKg: 0.1, CarbDeltaPerKg: 1.5},
		GoalMaintainWeight:     {},
	},
	seasonal: map[Season]NutritionTarget{
		SeasonInseason:   {CalorieDelta: 200, ProteinDeltaPerKg: 0.1, CarbDeltaPerKg: 1},
		SeasonPreSeason:  {CalorieDelta: 100, ProteinDeltaPerKg: 0.2},
		SeasonPostSeason: {CalorieDelta: -100, ProteinDeltaPerKg: 0.1},
		SeasonOffseason:  {},
	},
}

// Base returns the goal adjustment. Unknown goals get the MaintainWeight row.
func (p TargetPreset) Base(goal Goal) NutritionTarget {
	if t, ok := p.goals[goal]; ok {
		return t
	}
	return p.goals[GoalMaintainWeight]
}

// Seasonal returns the seasonal adjustment. Unknown seasons add nothing.
func (p TargetPreset) Seasonal(season Season) NutritionTarget {
	return p.seasonal[season]
}

// Target returns Base(goal) + Seasonal(season).
func (p TargetPreset) Target(goal Goal, season Season) NutritionTarget {
	return p.Base(goal).Add(p.Seasonal(season))
}

// CalculateTarget is the profile-level target for goal and season.
func CalculateTarget(goal Goal, season Season) NutritionTarget {
	return ProfilePreset.Target(goal, season)
}

func normalizeKey(s string) string {
	r := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

var goalAliases = map[string]Goal{
	"gainweight":         GoalGainWeight,
	"loseweight":         GoalLoseWeight,
	"maintainweight":     GoalMaintainWeight,
	"maintain":           GoalMaintainWeight,
	"buildmuscle":        GoalBuildMuscle,
	"improveperformance": GoalImprovePerformance,
}

// ParseGoal accepts display forms such as "Lose Weight" or "lose_weight".
// Anything unrecognised is MaintainWeight.
func ParseGoal(s string) Goal {
	if g, ok := goalAliases[normalizeKey(s)]; ok {
		return g
	}
	return GoalMaintainWeight
}

var seasonAliases = map[string]Season{
	"inseason":   SeasonInseason,
	"offseason":  SeasonOffseason,
	"preseason":  SeasonPreSeason,
	"postseason": SeasonPostSeason,
}

// ParseSeason accepts "In-Season", "pre season" and similar. Anything
// unrecognised is Offseason.
func ParseSeason(s string) Season {
	if v, ok := seasonAliases[normalizeKey(s)]; ok {
		return v
	}
	return SeasonOffseason
}

// inSeasonMonths lists the competitive months per sport.
var inSeasonMonths = map[string][]time.Month{
	"football":      {time.August, time.September, time.October, time.November, time.December},
	"soccer":        {time.August, time.September, time.October, time.November},
	"volleyball":    {time.August, time.September, time.October, time.November},
	"crosscountry":  {time.August, time.September, time.October, time.November},
	"basketball":    {time.November, time.December, time.January, time.February, time.March},
	"wrestling":     {time.November, time.December, time.January, time.February, time.March},
	"swimming":      {time.November, time.December, time.January, time.February, time.March},
	"hockey":        {time.October, time.November, time.December, time.January, time.February, time.March},
	"baseball":      {time.February, time.March, time.April, time.May, time.June},
	"softball":      {time.February, time.March, time.April, time.May},
	"track":         {time.January, time.February, time.March, time.April, time.May, time.June},
	"trackandfield": {time.January, time.February, time.March, time.April, time.May, time.June},
	"tennis":        {time.February, time.March, time.April, time.May},
	"lacrosse":      {time.February, time.March, time.April, time.May},
	"golf":          {time.September, time.October, time.March, time.April, time.May},
}

// DetectSeason maps a sport and month to Inseason or Offseason. It never
// returns PreSeason or PostSeason; those only come from an explicit profile
// value.
func DetectSeason(sport string, month time.Month) Season {
	for _, m := range inSeasonMonths[normalizeKey(sport)] {
		if m == month {
			return SeasonInseason
		}
	}
	return SeasonOffseason
}
