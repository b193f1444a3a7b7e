package rules

type Settings struct {
	Disabled map[string]bool // UPPER(ruleID) -> true
}

var rsettings = Settings{
	Disabled: map[string]bool{},
}

func SetSettings(s Settings) {
	if s.Disabled == nil {
		s.Disabled = map[string]bool{}
	}
	rsettings = s
}
