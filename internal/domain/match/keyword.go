package match

import "sort"

// KeywordInput holds already-canonicalized skill sets. Keys are the
// normalized canonical forms, values the display forms.
type KeywordInput struct {
	RequiredSkills map[string]string
	ResumeSkills   map[string]string

	RequiredExperienceMonths int
	ResumeExperienceMonths   int
}

type KeywordResult struct {
	Score              float64
	MatchedSkills      []string
	MissingSkills      []string
	AdditionalSkills   []string
	ExperienceVerified bool
}

// Keyword computes the rule-based overlap signal. An empty required set
// yields a perfect score with empty matched/missing sets: no requirement
// imposes no penalty.
func Keyword(in KeywordInput) KeywordResult {
	res := KeywordResult{
		MatchedSkills:    make([]string, 0, len(in.RequiredSkills)),
		MissingSkills:    make([]string, 0),
		AdditionalSkills: make([]string, 0),
	}

	for key, name := range in.RequiredSkills {
		if _, ok := in.ResumeSkills[key]; ok {
			res.MatchedSkills = append(res.MatchedSkills, name)
		} else {
			res.MissingSkills = append(res.MissingSkills, name)
		}
	}
	for key, name := range in.ResumeSkills {
		if _, ok := in.RequiredSkills[key]; !ok {
			res.AdditionalSkills = append(res.AdditionalSkills, name)
		}
	}

	sort.Strings(res.MatchedSkills)
	sort.Strings(res.MissingSkills)
	sort.Strings(res.AdditionalSkills)

	if len(in.RequiredSkills) == 0 {
		res.Score = 1.0
	} else {
		res.Score = float64(len(res.MatchedSkills)) / float64(len(in.RequiredSkills))
	}

	res.ExperienceVerified = in.RequiredExperienceMonths <= 0 ||
		in.ResumeExperienceMonths >= in.RequiredExperienceMonths

	return res
}
