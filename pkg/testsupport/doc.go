// Package testsupport holds golden-file and fixture helpers shared by the
// module's tests. Set UPDATE_GOLDENS=1 to rewrite goldens from current output.
package testsupport
