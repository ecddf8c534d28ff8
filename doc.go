// Package recall implements the spaced-repetition scheduling engine of the
// tandemloop language-learning app.
//
// recall decides, per vocabulary card, when it should next be shown, based
// on a history of user-supplied recall ratings. It models memory with three
// continuous quantities (stability, difficulty, retrievability) and derives
// review intervals from a power-law forgetting curve.
//
// All engine functions are pure: they read an immutable snapshot, take the
// current time as an argument, and return new values. Persistence is the
// caller's responsibility (see internal/store for the SQLite host layer).
//
// Basic usage:
//
//	settings := recall.DefaultSettings()
//	s, err := recall.NewScheduler(recall.SchedulerConfig{Settings: settings})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	states := recall.AdmitNewCards(pool, nil, settings, time.Now())
//	next, err := s.Schedule(&states[0], recall.Good, time.Now())
package recall
