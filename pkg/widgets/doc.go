// Package widgets provides vertical scrollables that cooperate through the
// nested scroll protocol.
//
// A [Scene] owns the widgets bound to a [viewtree.Tree] and steps their
// flings. Two widgets are available:
//
//   - [NestedChild] initiates gestures. Drags are user motion and flings are
//     programmatic motion; both are offered to the parents above it before
//     the child scrolls itself.
//   - [NestedParent] accepts gestures from children below it and can also
//     initiate its own, so parents can nest inside parents.
//
// # Collapsing Layouts
//
// A parent scrolls ahead of its children: downward motion goes to the parent
// until it reaches its end, and upward motion comes back to it only once the
// child is at its top. This is the usual collapsing header layout:
//
//	tree := viewtree.New()
//	page := tree.AddRoot("page")
//	list, _ := tree.Add(page, "list")
//
//	scene := widgets.NewScene(tree, physics.NewSplineFling(2))
//	header, _ := scene.NewParent(page, 600, 1000)
//	content, _ := scene.NewChild(list, 600, 2000)
//
//	content.DragStart()
//	content.DragUpdate(50) // header collapses first
//	content.DragEnd(1800)  // header flings, then hands off to content
//
// # Flings
//
// Flings are advanced by [Scene.Step] or [Scene.Settle]. A child's own
// flings run on [physics.Ballistic]. A parent's flings follow the scene's
// [physics.SplineFling], so the distance a fling will cover is known up
// front. When a parent takes a fling for a child and reaches its end, the
// distance it did not scroll becomes a spline fling for the child that
// covers exactly that distance.
//
// # Threading
//
// Scenes, trees and widgets are not safe for concurrent use. Drive them from
// the goroutine that owns the UI.
package widgets
