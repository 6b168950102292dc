package chat

import "strings"

// Template pools for each response branch. One entry is drawn at random per reply;
// {name} and {resources} placeholders are substituted before the text leaves the
// generator.

var crisisHighTemplates = []string{
	"{name}, I'm really concerned about what you're sharing. You don't have to face this alone. Please reach out right now:\n{resources}",
	"What you're feeling matters, {name}, and there are people ready to help this moment. Please contact one of these:\n{resources}",
	"{name}, I hear how much pain you're in. Your safety comes first. Please talk to someone now:\n{resources}",
}

var crisisMediumTemplates = []string{
	"That sounds incredibly heavy, {name}. When things feel this dark, talking to someone can help. These people are there for you:\n{resources}",
	"{name}, I'm worried about you. You deserve support through this. Please consider reaching out:\n{resources}",
}

// Fallback hotline line used when no crisis resources are configured.
const defaultCrisisResourceLine = "National Suicide Prevention Lifeline: 988"

var anxietyStrongTemplates = []string{
	"{name}, let's slow things down together. Breathe in for 4 counts, hold for 4, out for 4. Want to try a longer breathing exercise?",
	"That sounds like a lot of worry to carry, {name}. Let's ground ourselves: name 5 things you can see right now. I'm here with you.",
}

var anxietyMildTemplates = []string{
	"It sounds like some worry is creeping in, {name}. A few slow breaths can help take the edge off. What's on your mind?",
	"Feeling a bit on edge is so human, {name}. Would a short breathing exercise help right now?",
}

var depressionTemplates = []string{
	"I'm sorry things feel so heavy right now, {name}. You don't have to carry this alone — talking to a therapist can really help. Would you like to look at some options?",
	"{name}, thank you for telling me. Low days are real and they pass, even when it doesn't feel that way. Have you been able to talk to anyone about this?",
	"That emptiness sounds exhausting, {name}. Be gentle with yourself today. Professional support can make a difference — want me to share some ways to find it?",
}

var angerStrongTemplates = []string{
	"That sounds genuinely infuriating, {name}. Your anger makes sense. Before anything else, want to vent the whole story to me?",
	"{name}, that would make anyone furious. Let it out here — what happened?",
}

var angerMildTemplates = []string{
	"Sounds frustrating, {name}. What part is bothering you the most?",
	"I get why that's annoying, {name}. Do you want to talk it through?",
}

var joyTemplates = []string{
	"That's wonderful to hear, {name}! What made today so good?",
	"Love that energy, {name}! Tell me more about it!",
	"{name}, that genuinely made me smile. Savor this feeling!",
}

var gratitudeTemplates = []string{
	"Gratitude looks good on you, {name}! What else are you thankful for today?",
	"That's beautiful, {name}. Noticing the good things rewires us toward them. Want to add it to your gratitude list?",
	"{name}, I love that. Taking a moment to appreciate what we have is powerful.",
}

var negativeSentimentTemplates = []string{
	"That sounds really hard, {name}. I'm here and I'm listening.",
	"I'm sorry you're going through this, {name}. Your feelings are completely valid.",
	"Thank you for trusting me with that, {name}. It's okay to not be okay.",
}

var workFollowUps = []string{
	" Work stress can be relentless — is there one thing about it you could set down tonight?",
	" Jobs can take so much out of us. What would make tomorrow at work a little lighter?",
}

var relationshipFollowUps = []string{
	" Relationships are hard, and caring this much shows how much it matters to you. Do you want to talk about what happened?",
	" People we're close to can hurt us the most. How are you holding up?",
}

var genericFollowUps = []string{
	" What do you think would help most right now?",
	" Do you want to tell me more about it?",
}

var positiveSentimentTemplates = []string{
	"I'm so glad to hear that, {name}! Keep riding that wave.",
	"That's great news, {name}! Moments like this are worth celebrating.",
	"Yes, {name}! You deserve good days like this one.",
}

var neutralQuestionTemplates = []string{
	"Good question, {name}. Let's think it through together — what's your gut feeling?",
	"Hmm, {name}, I'm not sure there's one answer. What's prompting the question?",
}

var neutralStatementTemplates = []string{
	"I hear you, {name}. How are you feeling about that?",
	"Thanks for sharing, {name}. What's been on your mind lately?",
	"Tell me more, {name} — I'm listening.",
}

// jokePool mirrors the seeded joke table.
var jokePool = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"I told my wife she was drawing her eyebrows too high. She looked surprised.",
	"Why did the scarecrow win an award? He was outstanding in his field!",
	"What do you call a fake noodle? An impasta!",
	"Why don't eggs tell jokes? They'd crack each other up!",
	"What's the best thing about Switzerland? I don't know, but the flag is a big plus!",
	"I'm reading a book about anti-gravity. It's impossible to put down!",
	"Why did the math book look so sad? Because it was full of problems!",
}

// quotePool mirrors the seeded motivational quote table.
var quotePool = []string{
	"Every day is a new beginning. Take a deep breath, smile, and start again.",
	"The only way to do great work is to love what you do. — Steve Jobs",
	"Believe you can and you're halfway there. — Theodore Roosevelt",
	"Your mental health is a priority. Your happiness is essential. Your self-care is a necessity.",
	"Progress, not perfection, is the goal.",
	"You are stronger than you think, braver than you feel, and more loved than you know.",
	"Happiness can be found even in the darkest of times, if one only remembers to turn on the light. — Albus Dumbledore",
	"The present moment is the only time over which we have dominion. — Thich Nhat Hanh",
}

// renderName substitutes the preferred-name placeholder.
func renderName(template, name string) string {
	if name == "" {
		name = "friend"
	}
	return strings.ReplaceAll(template, "{name}", name)
}
