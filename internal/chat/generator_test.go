package chat

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/types"
)

type fakeResources struct {
	resources []types.CrisisResource
	err       error
}

func (f *fakeResources) ListActive(ctx context.Context, limit int) ([]types.CrisisResource, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.resources) > limit {
		return f.resources[:limit], nil
	}
	return f.resources, nil
}

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestGenerateCrisisReply(t *testing.T) {
	resources := &fakeResources{resources: []types.CrisisResource{
		{Name: "National Suicide Prevention Lifeline", PhoneNumber: "988"},
		{Name: "Crisis Text Line", PhoneNumber: "Text HOME to 741741"},
	}}
	gen := NewGenerator(resources, fixedRand())
	result := analysis.Result{CrisisLevel: analysis.CrisisHigh, CrisisConfidence: 0.9}

	reply := gen.Generate(context.Background(), "I want to die", Context{UserName: "Ana"}, result, nil)

	assert.Equal(t, types.CategoryCrisis, reply.Category)
	assert.Contains(t, reply.Text, "Ana")
	assert.Contains(t, reply.Text, "988")
	assert.NotContains(t, reply.Text, "{name}")
	assert.NotContains(t, reply.Text, "{resources}")
	assert.Equal(t, "high", reply.Metadata["crisis_level"])
}

func TestGenerateCrisisReplyWithoutResources(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	result := analysis.Result{CrisisLevel: analysis.CrisisHigh, CrisisConfidence: 0.9}

	reply := gen.Generate(context.Background(), "no reason to live", Context{}, result, nil)

	assert.Equal(t, types.CategoryCrisis, reply.Category)
	assert.Contains(t, reply.Text, "988", "fallback hotline must always be present")
}

func TestGenerateCrisisReplyOnResourceStoreFailure(t *testing.T) {
	gen := NewGenerator(&fakeResources{err: errors.New("db down")}, fixedRand())
	result := analysis.Result{CrisisLevel: analysis.CrisisMedium, CrisisConfidence: 0.7}

	reply := gen.Generate(context.Background(), "hopeless", Context{}, result, nil)

	assert.Equal(t, types.CategoryCrisis, reply.Category)
	assert.Contains(t, reply.Text, "988")
}

func TestGenerateLowCrisisUsesHighTemplates(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	result := analysis.Result{CrisisLevel: analysis.CrisisLow, CrisisConfidence: 0.5}

	reply := gen.Generate(context.Background(), "falling apart", Context{UserName: "Sam"}, result, nil)

	assert.Equal(t, types.CategoryCrisis, reply.Category)
	found := false
	for _, tmpl := range crisisHighTemplates {
		rendered := strings.ReplaceAll(renderName(tmpl, "Sam"), "{resources}", defaultCrisisResourceLine)
		if rendered == reply.Text {
			found = true
		}
	}
	assert.True(t, found, "low tier must draw from the high template set")
}

func TestGenerateEmotionCategories(t *testing.T) {
	cases := []struct {
		emotion   analysis.Emotion
		intensity float64
		category  types.Category
	}{
		{analysis.EmotionAnxiety, 0.3, types.CategoryBreathing},
		{analysis.EmotionAnxiety, 0.8, types.CategoryBreathing},
		{analysis.EmotionDepression, 0.5, types.CategoryTherapy},
		{analysis.EmotionAnger, 0.4, types.CategoryGeneral},
		{analysis.EmotionJoy, 0.6, types.CategoryGeneral},
		{analysis.EmotionGratitude, 0.2, types.CategoryGratitude},
	}
	for _, tc := range cases {
		gen := NewGenerator(&fakeResources{}, fixedRand())
		result := analysis.Result{
			SentimentLabel:  analysis.SentimentNeutral,
			Emotions:        map[analysis.Emotion]float64{tc.emotion: tc.intensity},
			DominantEmotion: tc.emotion,
		}

		reply := gen.Generate(context.Background(), "msg", Context{UserName: "Kim"}, result, nil)

		assert.Equal(t, tc.category, reply.Category, "emotion %s", tc.emotion)
		assert.NotContains(t, reply.Text, "{name}")
		assert.Equal(t, string(tc.emotion), reply.Metadata["emotion"])
	}
}

func TestGenerateAnxietyIntensityBranches(t *testing.T) {
	strong := map[string]bool{}
	for _, tmpl := range anxietyStrongTemplates {
		strong[renderName(tmpl, "Kim")] = true
	}

	gen := NewGenerator(&fakeResources{}, fixedRand())
	result := analysis.Result{
		Emotions:        map[analysis.Emotion]float64{analysis.EmotionAnxiety: 0.9},
		DominantEmotion: analysis.EmotionAnxiety,
	}
	reply := gen.Generate(context.Background(), "panicking", Context{UserName: "Kim"}, result, nil)
	assert.True(t, strong[reply.Text], "intensity 0.9 must use the strong set")

	result.Emotions[analysis.EmotionAnxiety] = 0.2
	reply = gen.Generate(context.Background(), "bit nervous", Context{UserName: "Kim"}, result, nil)
	assert.False(t, strong[reply.Text], "intensity 0.2 must use the mild set")
}

func TestGenerateNegativeSentimentWithWorkTopic(t *testing.T) {
	gen := NewGenerator(&fakeResources{}, fixedRand())
	result := analysis.Result{SentimentLabel: analysis.SentimentNegative, SentimentScore: -0.3}

	reply := gen.Generate(context.Background(), "my job is draining me", Context{UserName: "Lee"}, result, nil)

	assert.Equal(t, types.CategoryGeneral, reply.Category)
	assert.Contains(t, reply.Text, "Lee")
	assert.Contains(t, strings.ToLower(reply.Text), "work")
}

func TestGenerateNeutralQuestionVsStatement(t *testing.T) {
	questionSet := map[string]bool{}
	for _, tmpl := range neutralQuestionTemplates {
		questionSet[renderName(tmpl, "Lee")] = true
	}

	gen := NewGenerator(&fakeResources{}, fixedRand())
	result := analysis.Result{SentimentLabel: analysis.SentimentNeutral}

	question := gen.Generate(context.Background(), "what is the point of journaling", Context{UserName: "Lee"}, result, nil)
	assert.True(t, questionSet[question.Text], "WH-question must draw from the question set")

	statement := gen.Generate(context.Background(), "went to the park", Context{UserName: "Lee"}, result, nil)
	assert.False(t, questionSet[statement.Text], "statement must not draw from the question set")
}

func TestGenerateDeterministicWithFixedSeed(t *testing.T) {
	result := analysis.Result{SentimentLabel: analysis.SentimentPositive, SentimentScore: 0.4}

	first := NewGenerator(&fakeResources{}, fixedRand()).
		Generate(context.Background(), "good day", Context{UserName: "Lee"}, result, nil)
	second := NewGenerator(&fakeResources{}, fixedRand()).
		Generate(context.Background(), "good day", Context{UserName: "Lee"}, result, nil)

	assert.Equal(t, first.Text, second.Text)
}
