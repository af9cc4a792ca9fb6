package questiongen

import "fmt"

const systemPrompt = "You are a quiz question generator. Your task is to generate high-quality multiple-choice questions. " +
	"The output MUST be a JSON array that strictly follows the provided schema. " +
	"Do not include any explanation or extra text outside the JSON block."

// buildUserMessage asks for count questions about topic.
func buildUserMessage(topic string, count int) string {
	return fmt.Sprintf("Generate exactly %d unique, interesting, and challenging multiple-choice questions about the topic: %q. "+
		"Ensure each question has 4 distinct options and one clearly marked correct answer, "+
		"with a description that concisely justifies the answer.", count, topic)
}
