// Package media inserts and edits images and video embeds.
//
// Images and video embeds share one editing contract. Each sits in an
// alignment container, a block element carrying text-align, which is
// persisted. Selecting a media element adds transient decoration: images
// are wrapped in a span.media-edit-wrapper, video embeds take the handles
// directly since their div.video-embed is already a wrapper. Eight
// span.resize-handle elements, one per compass point, let the user resize.
//
// Resizing is computed by ComputeResize from the size recorded at
// selection time and the total pointer delta. Video embeds always keep
// 16:9; images keep their aspect ratio on corner handles and change one
// axis on edge handles.
package media
