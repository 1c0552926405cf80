package genai

import "fmt"

func quizPrompt(topic, level string) string {
	return fmt.Sprintf(`Generate 10 multiple-choice questions about %q of %s level difficulty. Return them in the following JSON format (inside markdown block):

`+"```json"+`
[
  {
    "question": "What is JavaScript used for?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctIndex": 1
  }
]
`+"```", topic, level)
}

func questionPrompt(topic, level string) string {
	return fmt.Sprintf(`Generate ONE multiple-choice question about %q at %s level difficulty. Return it **inside a markdown code block** in this exact JSON shape:

`+"```json"+`
{
  "question": "string",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correctIndex": 2
}
`+"```", topic, level)
}
