// Package disambig turns missing facts into questions and applies answers
// to the application state without mutating it.
package disambig

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kkennyy/call-what-ah/internal/model"
)

// Question identifiers that are not position scoped
const (
	QuestionUserSex           = "user-sex-required"
	QuestionCousinAge         = "cousin-age-relative"
	QuestionCousinAgeResolved = "cousin-age-relative-resolved"
)

const (
	brotherQuestionPrefix = "brother-age-"
	sisterQuestionPrefix  = "sister-age-"
	labelOlderThanMe      = "Older than me"
	labelYoungerThanMe    = "Younger than me"
	referencePerson       = "the reference person"
	possessive            = "’s "

	fallbackOlderBrotherStepID   = "olderBrother"
	fallbackYoungerBrotherStepID = "youngerBrother"
	fallbackOlderSisterStepID    = "olderSister"
	fallbackYoungerSisterStepID  = "youngerSister"
)

// Input is what question generation reads
type Input struct {
	Chain      model.Chain
	Catalog    *model.StepCatalog
	Sex        model.Sex
	Resolution model.ConceptResolution
	Facts      model.Facts
}

var parenthetical = regexp.MustCompile(`\s*\(.*?\)\s*`)

// cleanLabel drops parentheticals and lower-cases a step label
func cleanLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(parenthetical.ReplaceAllString(label, " ")))
}

// Questions lists the questions that would close the resolution's missing
// facts, plus a resolved cousin-age question when that fact is already set.
func Questions(in Input) []model.Question {
	questions := []model.Question{}

	for i, entry := range in.Chain {
		step, ok := in.Catalog.Lookup(entry.StepID)
		if !ok {
			continue
		}
		switch step.Token {
		case "xb":
			questions = append(questions, siblingQuestion(in, i, "brother", brotherQuestionPrefix,
				stepIDFor(in.Catalog, "ob", fallbackOlderBrotherStepID),
				stepIDFor(in.Catalog, "lb", fallbackYoungerBrotherStepID)))
		case "xs":
			questions = append(questions, siblingQuestion(in, i, "sister", sisterQuestionPrefix,
				stepIDFor(in.Catalog, "os", fallbackOlderSisterStepID),
				stepIDFor(in.Catalog, "ls", fallbackYoungerSisterStepID)))
		}
	}

	if in.Sex == model.SexUnknown && in.Resolution.IsMissing(model.FactUserSex) {
		questions = append(questions, model.Question{
			ID:     QuestionUserSex,
			Prompt: "Reverse lookup needs your sex to avoid ambiguous family role. Choose one:",
			Type:   model.QuestionSetSex,
			Options: []model.Option{
				model.SexOption("Male", model.SexMale),
				model.SexOption("Female", model.SexFemale),
			},
		})
	}

	desc := chainDescription(in.Chain, in.Catalog)

	if in.Resolution.IsMissing(model.FactCousinAgeRelative) {
		questions = append(questions, cousinAgeQuestion(QuestionCousinAge, desc))
	}

	current := in.Facts.Get(model.FactCousinAgeRelative)
	if in.Resolution.IsRequired(model.RequireCousinAge) &&
		!in.Resolution.IsMissing(model.FactCousinAgeRelative) &&
		current != "" {
		q := cousinAgeQuestion(QuestionCousinAgeResolved, desc)
		q.Resolved = true
		q.CurrentValue = current
		q.CurrentLabel = labelYoungerThanMe
		if current == model.AgeOlder {
			q.CurrentLabel = labelOlderThanMe
		}
		questions = append(questions, q)
	}

	return questions
}

func siblingQuestion(in Input, index int, noun, idPrefix, olderID, youngerID string) model.Question {
	than := referencePerson
	if index > 0 {
		if prev, ok := in.Catalog.Lookup(in.Chain[index-1].StepID); ok {
			than = cleanLabel(prev.Label)
		}
	}
	return model.Question{
		ID:        fmt.Sprintf("%s%d", idPrefix, index),
		Prompt:    fmt.Sprintf("For step %d, is this %s older or younger than %s?", index+1, noun, than),
		Type:      model.QuestionReplaceStep,
		StepIndex: index,
		Options: []model.Option{
			{Label: "Older", StepID: olderID},
			{Label: "Younger", StepID: youngerID},
		},
	}
}

func cousinAgeQuestion(id, desc string) model.Question {
	return model.Question{
		ID:      id,
		Prompt:  fmt.Sprintf("Is your %s older or younger than you?", desc),
		Type:    model.QuestionSetFact,
		FactKey: model.FactCousinAgeRelative,
		Options: []model.Option{
			{Label: labelOlderThanMe, Value: model.AgeOlder},
			{Label: labelYoungerThanMe, Value: model.AgeYounger},
		},
	}
}

// chainDescription renders "father’s older brother’s son"
func chainDescription(chain model.Chain, catalog *model.StepCatalog) string {
	parts := make([]string, len(chain))
	for i, entry := range chain {
		parts[i] = "?"
		if step, ok := catalog.Lookup(entry.StepID); ok {
			parts[i] = cleanLabel(step.Label)
		}
	}
	return strings.Join(parts, possessive)
}

func stepIDFor(catalog *model.StepCatalog, token, fallback string) string {
	if step, ok := catalog.ByToken(token); ok {
		return step.ID
	}
	return fallback
}

// Find returns the question with the given id
func Find(questions []model.Question, id string) (model.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}
