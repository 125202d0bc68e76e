// Package gallery holds the state of one gallery session.
//
// A [Model] owns the discovered images, the current shuffle order, the
// layout parameters, the container size, the background shade and the
// scroll offset. It is the only place those values change, and it decides
// when the layout has to be recomputed:
//
//   - [Model.Reshuffle], [Model.SetThumbnailWidth], [Model.SetColumnGap],
//     [Model.SetRowGap] and [Model.OnContainerResized] mark the layout stale.
//   - [Model.SetBackgroundShade] and [Model.Scroll] are cosmetic and never do.
//   - Rejected input returns an INVALID_PARAMETER error and leaves every
//     value, including the stale flag, as it was.
//
// # Events
//
// UI shells do not call the setters directly. They translate user actions
// into [Event] values and hand them to [Model.Dispatch], which updates the
// model, recomputes the layout when needed and passes a [Frame] to a
// [Renderer]:
//
//	m := gallery.New(images, gallery.WithSeed(42))
//	err := m.Dispatch(gallery.Resized{Width: 960, Height: 600}, renderer)
//	err = m.Dispatch(gallery.ParamChanged{Param: gallery.ParamThumbnailWidth, Value: 250}, renderer)
//	err = m.Dispatch(gallery.Reshuffled{}, renderer)
//	err = m.Dispatch(gallery.ScrollDelta{Direction: gallery.ScrollDown}, renderer)
//
// A Model is not safe for concurrent use; events are expected to arrive one
// at a time from a single event loop.
package gallery
