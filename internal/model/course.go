package model

type LectureType string

const (
	LectureVideo LectureType = "video"
	LecturePDF   LectureType = "pdf"
)

// Course 课程内容树的根。AccessCode 为注册口令，明文保存、精确比较，
// 仅课程归属教师可见（可见性过滤在 service 层完成）。
// swagger:model Course
type Course struct {
	UUIDBase
	Title       string    `gorm:"size:255;not null" json:"courseTitle"`
	Description string    `gorm:"type:text;not null" json:"courseDescription"`
	Thumbnail   string    `gorm:"size:512" json:"courseThumbnail"`
	AccessCode  string    `gorm:"size:64;not null" json:"accessCode,omitempty"`
	Published   bool      `gorm:"default:true" json:"isPublished"`
	EducatorID  uint      `gorm:"index;not null" json:"educatorId"`
	Chapters    []Chapter `gorm:"foreignKey:CourseID" json:"courseContent"`
}

func (Course) TableName() string {
	return "courses"
}

// Chapter 章节，Order 为展示顺序（课程内严格递增）
type Chapter struct {
	UUIDBase
	CourseID string    `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title    string    `gorm:"size:255;not null" json:"chapterTitle"`
	Order    int       `gorm:"default:0" json:"chapterOrder"`
	Lectures []Lecture `gorm:"foreignKey:ChapterID" json:"chapterContent"`
}

func (Chapter) TableName() string {
	return "chapters"
}

// Lecture 讲座。ID 在课程内唯一（进度记录只按讲座ID取交集），
// CourseID 冗余存储以便按课程整树查询与级联删除。
type Lecture struct {
	UUIDBase
	ChapterID   string      `gorm:"index;type:varchar(36);not null" json:"chapterId"`
	CourseID    string      `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title       string      `gorm:"size:255;not null" json:"lectureTitle"`
	Type        LectureType `gorm:"type:enum('video','pdf');default:'video'" json:"lectureType"`
	URL         string      `gorm:"size:1024" json:"lectureUrl"`
	Duration    uint        `gorm:"default:1" json:"lectureDuration"` // 单位：分钟
	FreePreview bool        `gorm:"default:false" json:"isPreviewFree"`
	Order       int         `gorm:"default:0" json:"lectureOrder"`
}

func (Lecture) TableName() string {
	return "lectures"
}

// TotalLectures 当前内容树的讲座总数，不区分类型与试看标记
func (c *Course) TotalLectures() int {
	total := 0
	for _, ch := range c.Chapters {
		total += len(ch.Lectures)
	}
	return total
}

// LectureIDSet 当前内容树的讲座ID集合，用于进度聚合时取交集
func (c *Course) LectureIDSet() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, ch := range c.Chapters {
		for _, l := range ch.Lectures {
			ids[l.ID] = struct{}{}
		}
	}
	return ids
}

// LocateLecture 把讲座ID解析为当前树上的 (章节下标, 讲座下标)。
// 讲座已被删除或调序后找不到时回退到 (0,0)。
func (c *Course) LocateLecture(lectureID string) (chapterIdx, lectureIdx int) {
	if lectureID == "" {
		return 0, 0
	}
	for ci, ch := range c.Chapters {
		for li, l := range ch.Lectures {
			if l.ID == lectureID {
				return ci, li
			}
		}
	}
	return 0, 0
}
