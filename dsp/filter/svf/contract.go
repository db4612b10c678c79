package svf

// checkDesign enforces the coefficient constructor preconditions in
// svfdebug builds. Release builds compile it to nothing.
func checkDesign(sampleRate, frequency, q float64) {
	if !contractChecks {
		return
	}
	if err := validateDesign(sampleRate, frequency, q); err != nil {
		panic(err)
	}
}

func checkContract(ok bool, msg string) {
	if contractChecks && !ok {
		panic("svf: " + msg)
	}
}
