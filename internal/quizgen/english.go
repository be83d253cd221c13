package quizgen

import (
	"fmt"
	"strings"

	"speakroots/internal/models"
	"speakroots/internal/prng"
)

func englishGenerator(name string, fn GenerateFunc) Generator {
	return Generator{Name: name, Subject: models.SubjectEnglish, Fn: fn}
}

// sampleOthers picks up to n distinct values from pool, skipping anything in exclude
func sampleOthers(r prng.Source, pool []string, n int, exclude ...string) []string {
	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}
	shuffled := append([]string(nil), pool...)
	prng.Shuffle(r, shuffled)

	out := make([]string, 0, n)
	for _, v := range shuffled {
		if len(out) == n {
			break
		}
		if _, ok := skip[v]; ok {
			continue
		}
		skip[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func firsts(pairs []wordPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.word
	}
	return out
}

func matches(pairs []wordPair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.match
	}
	return out
}

// Synonym asks for the word closest in meaning; distractors are opposites of other words
func Synonym() Generator {
	return englishGenerator("synonym", func(r prng.Source) (Candidate, error) {
		p := prng.Pick(r, synonyms)
		return Candidate{
			Prompt:  fmt.Sprintf("Which word means the same as '%s'?", p.word),
			Choices: sampleOthers(r, matches(antonyms), distractorsPerQuestion, p.word, p.match),
			Answer:  p.match,
		}, nil
	})
}

// Antonym asks for the opposite; a known synonym of the word is always offered as a distractor
func Antonym() Generator {
	return englishGenerator("antonym", func(r prng.Source) (Candidate, error) {
		p := prng.Pick(r, antonyms)
		var choices []string
		for _, s := range synonyms {
			if s.word == p.word {
				choices = append(choices, s.match)
			}
		}
		choices = append(choices, sampleOthers(r, firsts(synonyms), distractorsPerQuestion, p.word, p.match)...)
		return Candidate{
			Prompt:  fmt.Sprintf("Which word is the opposite of '%s'?", p.word),
			Choices: choices,
			Answer:  p.match,
		}, nil
	})
}

// Plural asks for the plural form; distractors apply the regular rules blindly
func Plural() Generator {
	return englishGenerator("plural", func(r prng.Source) (Candidate, error) {
		p := prng.Pick(r, plurals)
		w := p.word
		choices := []string{w + "s", w + "es", w + "ies", w}
		if strings.HasSuffix(w, "y") {
			choices = append(choices, strings.TrimSuffix(w, "y")+"ies", w+"s")
		}
		if strings.HasSuffix(w, "f") || strings.HasSuffix(w, "fe") {
			choices = append(choices, w+"s", strings.TrimSuffix(strings.TrimSuffix(w, "e"), "f")+"ves")
		}
		return Candidate{
			Prompt:  fmt.Sprintf("What is the plural of '%s'?", w),
			Choices: choices,
			Answer:  p.match,
		}, nil
	})
}

// PastTense asks for the simple past; distractors include the regular -ed form and the participle
func PastTense() Generator {
	return englishGenerator("past_tense", func(r prng.Source) (Candidate, error) {
		p := prng.Pick(r, pastTenses)
		w := p.word
		choices := []string{w + "ed", w + "s", w + "ing"}
		if participle, ok := irregularParticiples[w]; ok {
			choices = append(choices, participle)
		}
		return Candidate{
			Prompt:  fmt.Sprintf("What is the past tense of '%s'?", w),
			Choices: choices,
			Answer:  p.match,
		}, nil
	})
}

// Article asks which of a/an fits a noun
func Article() Generator {
	return englishGenerator("article", func(r prng.Source) (Candidate, error) {
		noun := prng.Pick(r, articleNouns)
		right := articleFor(noun)
		wrong := "an"
		if right == "an" {
			wrong = "a"
		}
		return Candidate{
			Prompt: fmt.Sprintf("Which is correct for '%s'?", noun),
			Choices: []string{
				wrong + " " + noun,
				"the a " + noun,
				noun + " " + right,
			},
			Answer: right + " " + noun,
		}, nil
	})
}

// SubjectVerb asks for the present-tense verb form that agrees with the subject
func SubjectVerb() Generator {
	return englishGenerator("subject_verb", func(r prng.Source) (Candidate, error) {
		subject := prng.Pick(r, agreementSubjects)
		verb := prng.Pick(r, agreementVerbs)
		answer := verb.base
		if subject.singular {
			answer = verb.third
		}
		return Candidate{
			Prompt:  fmt.Sprintf("Fill in the blank: %s ___ %s every day.", subject.text, verb.object),
			Choices: []string{verb.base, verb.third, verb.base + "ing", "to " + verb.base},
			Answer:  answer,
		}, nil
	})
}

// Preposition fills a blank in a short sentence
func Preposition() Generator {
	return englishGenerator("preposition", func(r prng.Source) (Candidate, error) {
		s := prng.Pick(r, prepositionSentences)
		return Candidate{
			Prompt:  "Choose the best word: " + s.sentence,
			Choices: sampleOthers(r, prepositions, distractorsPerQuestion, s.answer),
			Answer:  s.answer,
		}, nil
	})
}

// PrefixOpposite asks for the word formed with the right negative prefix
func PrefixOpposite() Generator {
	return englishGenerator("prefix_opposite", func(r prng.Source) (Candidate, error) {
		w := prng.Pick(r, prefixWords)
		choices := make([]string, 0, len(oppositePrefixes))
		for _, prefix := range sampleOthers(r, oppositePrefixes, distractorsPerQuestion, w.prefix) {
			choices = append(choices, prefix+w.base)
		}
		return Candidate{
			Prompt:  fmt.Sprintf("Which word means the opposite of '%s'?", w.base),
			Choices: choices,
			Answer:  w.prefix + w.base,
		}, nil
	})
}

// Spelling asks for the correctly spelled word given a meaning hint
func Spelling() Generator {
	return Generator{Name: "spelling", Subject: models.SubjectSpelling, Fn: func(r prng.Source) (Candidate, error) {
		w := prng.Pick(r, spellingWords)
		if len(w.misspellings) == 0 {
			return Candidate{}, generatorError("spelling", "no misspellings for %q", w.word)
		}
		return Candidate{
			Prompt:  fmt.Sprintf("Which is the correct spelling of the word meaning '%s'?", w.hint),
			Choices: w.misspellings,
			Answer:  w.word,
		}, nil
	}}
}
