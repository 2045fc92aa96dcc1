// Package deps checks that the external tools mkvslim shells out to are on
// PATH. A missing mkvmerge stops the run before any file is touched; a
// missing ffprobe only degrades probing.
package deps
