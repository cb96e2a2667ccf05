/*
Package mp3tag reads and writes ID3v2.3 tags of MP3 files.

Supported versions

Only ID3v2.3.0 tags are read and written. Files without one get a new
tag; if they carry a legacy ID3v1 tag at their end, its fields are
copied into the new tag and the file is saved immediately.

Saving

A tag is followed by padding, unused space that lets the tag grow
without moving the audio. When a changed tag, minus its padding, still
fits the space the old tag occupied, Save shrinks or grows the padding
to fill that space exactly and overwrites the tag in place. Otherwise
the file is rewritten: the tag, with fresh padding, and the audio are
written to path + ".tmp", which then replaces the original.

Invalid frames

A frame that cannot be decoded does not make the whole tag unreadable.
It is set aside, with a description of the problem, and still counts
towards the space of the tag. Invalid frames are never written back;
after DiscardInvalidFrames or a save their space turns into padding.

Accessing and manipulating frames

Frames are available in tag order through Tag.AllFrames, Tag.Frame
and Tag.Frames. Each frame has a Body whose concrete type depends on
the frame type, for example *TextBody for TIT2 or *PictureBody for
APIC. Text frames can also be used through Tag.Text and Tag.SetText.

*/
package mp3tag
