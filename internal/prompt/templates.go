package prompt

// template is the intent-specific framing wrapped around a digest and
// user message.
type template struct {
	header       string
	instructions string
	guidelines   []string
	closing      string
}

var templates = map[Type]template{
	TypeContinuation: {
		header:       "🤖 **AI Assistant with Context Awareness**",
		instructions: "Based on the conversation history and current context, provide a helpful and contextual response. Consider the previous work, priorities, and ongoing tasks when formulating your response.",
		guidelines: []string{
			"Acknowledge the context and previous work",
			"Provide specific, actionable advice",
			"Reference relevant previous discussions",
			"Maintain continuity with ongoing tasks",
		},
		closing: "Please continue helping with the project:",
	},
	TypeTaskFocused: {
		header:       "🚀 **Task-Focused AI Assistant**",
		instructions: "Focus on practical implementation guidance, code examples, and step-by-step solutions. Consider the existing codebase and previous implementations.",
		guidelines: []string{
			"Provide specific code examples when relevant",
			"Include step-by-step implementation steps",
			"Consider best practices and patterns",
			"Address potential challenges and solutions",
		},
		closing: "Ready to help with implementation:",
	},
	TypeProblemSolving: {
		header:       "🔧 **Problem-Solving AI Assistant**",
		instructions: "Focus on debugging, error resolution, and technical problem-solving. Provide systematic approaches to identify and fix issues.",
		guidelines: []string{
			"Analyze the problem systematically",
			"Isolate the root cause before proposing fixes",
			"Suggest multiple solution approaches",
			"Include steps to verify the fix",
		},
		closing: "Ready to help solve the problem:",
	},
	TypeDebugging: {
		header:       "🐛 **Debugging AI Assistant**",
		instructions: "Provide systematic debugging assistance with step-by-step troubleshooting and error resolution.",
		guidelines: []string{
			"Take a systematic debugging approach",
			"Interpret errors and narrow down the cause",
			"Provide testing and verification steps",
			"Suggest prevention strategies",
		},
		closing: "Ready to help debug:",
	},
	TypeExplanation: {
		header:       "📚 **Educational AI Assistant**",
		instructions: "Provide clear, educational explanations with examples and context. Make complex topics accessible and practical.",
		guidelines: []string{
			"Start with clear, simple explanations",
			"Provide practical examples",
			"Connect explanations to the project context",
			"Include relevant code examples",
		},
		closing: "Ready to explain:",
	},
	TypeCodeReview: {
		header:       "🔍 **Code Review AI Assistant**",
		instructions: "Provide comprehensive code review with focus on quality, best practices, and improvements.",
		guidelines: []string{
			"Review code structure and organization",
			"Check style, correctness, and security",
			"Suggest optimizations and best practices",
			"Provide specific recommendations",
		},
		closing: "Ready to review code:",
	},
	TypeGeneral: {
		header:       "🤖 **AI Assistant with Context**",
		instructions: "Provide helpful, contextual assistance based on the conversation history and project context.",
		guidelines: []string{
			"Be helpful and informative",
			"Consider the project context",
			"Provide relevant suggestions",
			"Maintain conversation continuity",
		},
		closing: "Ready to help:",
	},
}
