package survey

// Preview composes the authoring-time what-you-see-is-what-you-get
// rendering of a question: the same control the public form would show,
// with no captured answer and all interaction disabled.
func Preview(q Question) Control {
	return NewControl(q, Answer{}, nil, true)
}
