//go:build !svfdebug

package svf

const contractChecks = false
