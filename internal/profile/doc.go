// Package profile implements a nested, zone-based tick profiler.
//
// A Profiler owns a fixed-capacity table of named zones. Each call to Begin
// opens a zone and pushes it onto the profiler's active-zone stack; End pops
// it and attributes the elapsed ticks:
//
//   - the zone's exclusive ticks grow by the elapsed time,
//   - the parent zone (the previous stack top) has the same amount deducted
//     from its exclusive ticks, because the parent's own interval was still
//     running through the nested call,
//   - the zone's inclusive ticks are set to their value at Begin plus the
//     elapsed time, so a zone re-entered recursively is not double counted.
//
// The idiomatic use is a deferred End:
//
//	func parse(p *profile.Profiler, data []byte) {
//	    defer p.Begin("parse", zoneParse, uint64(len(data))).End()
//	    ...
//	}
//
// A nil *Profiler is a valid, disabled profiler.
//
// A Profiler is not safe for concurrent use. Sessions that run on different
// goroutines need their own Profiler.
package profile
