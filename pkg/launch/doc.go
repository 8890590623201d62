// Package launch fetches upcoming rocket launches from public launch-data APIs.
//
// A [Source] returns the launches scheduled inside a [Window]. Two sources are
// provided:
//
//   - [SpaceX]: the SpaceX v4 API. Launch pads are resolved by locality
//     (e.g. "Vandenberg") and upcoming launches are queried for those pads.
//   - [LaunchLibrary]: The Space Devs Launch Library 2 API, filtered by
//     provider and location name.
//
// [Fallback] chains sources so that an outage or an empty answer from the
// primary API is covered by the next one:
//
//	src := launch.NewFallback(logger,
//	    launch.NewSpaceX(launch.SpaceXConfig{Site: "Vandenberg"}),
//	    launch.NewLaunchLibrary(launch.LaunchLibraryConfig{Site: "Vandenberg"}, nil),
//	)
//
//	records, err := src.Fetch(ctx, launch.NewWindow(time.Now(), 21*24*time.Hour))
//
// Records are transient: they are built for one run and never stored.
//
// # Errors
//
//   - ErrUnexpectedStatus: the API answered with a non-2xx status
//   - ErrDecode: the response body could not be decoded
//   - ErrInvalidTime: a launch date could not be parsed
//   - ErrAllSourcesFailed: every source in a Fallback returned an error
package launch
