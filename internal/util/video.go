package util

import (
	"net/url"
	"strings"
)

// NormalizeVideoURL 把常见的视频分享链接规整为可嵌入播放器的形式。
// 支持 youtube.com/watch?v=、youtu.be/、vimeo.com/ 三类；
// 已是 embed 形式或无法识别的链接原样返回。
func NormalizeVideoURL(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	switch host {
	case "youtube.com", "m.youtube.com":
		if strings.HasPrefix(u.Path, "/embed/") {
			return raw
		}
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return "https://www.youtube.com/embed/" + id
			}
		}
		// shorts 链接同样转 embed
		if strings.HasPrefix(u.Path, "/shorts/") {
			id := strings.TrimPrefix(u.Path, "/shorts/")
			if id != "" {
				return "https://www.youtube.com/embed/" + strings.Trim(id, "/")
			}
		}
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case "vimeo.com":
		id := strings.Trim(u.Path, "/")
		if id != "" && !strings.Contains(id, "/") {
			return "https://player.vimeo.com/video/" + id
		}
	}

	return raw
}
