package bot

import "unicode/utf8"

// replyPageLimit is a safety margin under Telegram's 4096-character message
// cap. It accounts for markup overhead and must not be raised to 4096.
const replyPageLimit = 4000

// paginate packs the header and the item blocks into messages of at most
// replyPageLimit characters. The first page starts with the header; when a
// block would overflow the current page, the page is flushed and the block
// opens the next one. Block order is preserved.
func paginate(header string, blocks []string) []string {
	var pages []string
	buf := header
	for _, block := range blocks {
		if utf8.RuneCountInString(buf)+utf8.RuneCountInString(block) > replyPageLimit {
			pages = append(pages, buf)
			buf = block
			continue
		}
		buf += block
	}
	if buf != "" {
		pages = append(pages, buf)
	}
	return pages
}
