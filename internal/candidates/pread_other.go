//go:build !unix

package candidates

func platformReads() []Candidate { return nil }
