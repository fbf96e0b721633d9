package tutoring

import (
	"fmt"
	"strings"

	"github.com/mrlokans/studyhub/internal/entities"
)

const (
	noHistorySentinel   = "No prior conversation history. Start the session."
	noQuestionsFallback = "No specific test questions were provided. Please create your own questions and exercises to test the user."
)

const guidedStudyTemplate = `You are an Intelligent Guided Study Tutor, specialized in creating interactive and personalized conversation sessions.

  1. **Topic and Context:**
    **Topic:** %s
    **Collection:** %s

  2. **Reference Material (Summary):**
  %s

  3. **Question Instructions:**
  %s

  4. **Prior Conversation History (Maintain context):**
  --- History Start ---
  %s
  --- History End ---

  5. **Main Action Instructions (Highest Priority):**
      * **Help Mechanism (Fallback):** If the user shows **persistent difficulty** (e.g., after two incorrect attempts or by explicitly asking for help with phrases like "I don't know" or "I'm stuck"), you must **stop the Socratic questioning**.
          * **Action:** Immediately provide the **correct solution/answer** or the **next step** clearly.
          * **Justification:** After giving the answer, offer a **concise explanation** of the reasoning to ensure learning.
          * **Transition:** Then, ask the user if they want to try a new example to reinforce the concept or if they prefer to move on to the next subtopic.
      * **Session Start:** If the history is empty, begin with a greeting and ask the user to specify which aspect of the topic they want to focus on.
      * **Tone:** Always be encouraging, academic, and constructive. Keep the conversation focused.

  Your next response (and only the next response) must be:`

const questionTemplate = `
You are an Academic Assessment Creator.
Topic: %s

Instructions:
1. Generate **%d multiple-choice questions** based on the content below.
2. Each question must have **exactly %d options** ('items').
3. Only one option may be true ('isCorrect: true').
4. The goal is to test understanding and retention of the concepts.

Content to Analyze:
--- START ---
%s
--- END ---

Respond strictly with JSON matching the schema.
`

func guidedStudyPrompt(subject *entities.Subject) string {
	collectionName := ""
	if subject.Collection != nil {
		collectionName = subject.Collection.Name
	}

	summary := fmt.Sprintf("The main study topic is: **%s**. You do not have pre-written summary content, so use your internal knowledge about this subject to guide the session.", subject.Name)
	if subject.Resume != nil && *subject.Resume != "" {
		summary = *subject.Resume
	}

	questions := noQuestionsFallback
	if len(subject.Questions) > 0 {
		texts := make([]string, len(subject.Questions))
		for i, q := range subject.Questions {
			texts[i] = q.Text
		}
		questions = "- " + strings.Join(texts, "\n- ")
	}

	return fmt.Sprintf(guidedStudyTemplate, subject.Name, collectionName, summary, questions, tutorHistory(subject.Conversations))
}

func tutorHistory(turns []entities.Conversation) string {
	if len(turns) == 0 {
		return noHistorySentinel
	}

	lines := make([]string, len(turns))
	for i, turn := range turns {
		speaker := "User"
		if turn.IsGenerated {
			speaker = "Tutor"
		}
		lines[i] = speaker + ": " + turn.Text
	}
	return strings.Join(lines, "\n")
}

// analyzableContent prefers a substantial resume and always appends the
// recent conversation.
func analyzableContent(resume *string, turns []entities.Conversation) string {
	lines := make([]string, len(turns))
	for i, turn := range turns {
		speaker := "Student"
		if turn.IsGenerated {
			speaker = "Tutor"
		}
		lines[i] = "[" + speaker + "] " + turn.Text
	}
	history := strings.Join(lines, "\n")

	if resume != nil && len(*resume) > minContentLength {
		return "MAIN SUMMARY:\n" + *resume + "\n\nCONVERSATION HISTORY (Additional Context):\n" + history
	}
	return "CONVERSATION HISTORY:\n" + history
}

func questionPrompt(topic string, count, itemCount int, content string) string {
	return fmt.Sprintf(questionTemplate, topic, count, itemCount, content)
}
