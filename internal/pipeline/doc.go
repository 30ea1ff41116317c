// Package pipeline orchestrates page analysis: render the target,
// extract its markup structure, capture a screenshot, ask the vision
// model for its reading, then ask once more to merge both readings
// into the final page description. Results are cached under
// deterministic fingerprints; concurrent identical requests share one
// in-flight build.
package pipeline
