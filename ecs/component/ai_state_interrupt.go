package component

// AIStateInterrupt queues one-shot FSM events raised outside the AI system
// (combat, damage). The AI system consumes and clears them on its next pass.
type AIStateInterrupt struct {
	Events []EventID
}

var AIStateInterruptComponent = NewComponent[AIStateInterrupt]()
