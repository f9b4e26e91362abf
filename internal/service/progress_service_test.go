package service

import (
	"testing"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 两章四讲的标准课程树：c1 下 l1/l2，c2 下 l3/l4
func testCourse() *model.Course {
	course := &model.Course{
		Title:       "Go 入门",
		Description: "desc",
		AccessCode:  "ABC123",
		Published:   true,
		EducatorID:  1,
		Chapters: []model.Chapter{
			{
				Title: "第一章",
				Order: 0,
				Lectures: []model.Lecture{
					{Title: "讲座一", Order: 0, FreePreview: true, URL: "https://www.youtube.com/embed/a"},
					{Title: "讲座二", Order: 1, URL: "https://www.youtube.com/embed/b"},
				},
			},
			{
				Title: "第二章",
				Order: 1,
				Lectures: []model.Lecture{
					{Title: "讲座三", Order: 0, URL: "https://www.youtube.com/embed/c"},
					{Title: "讲座四", Order: 1, URL: "https://www.youtube.com/embed/d"},
				},
			},
		},
	}
	course.ID = "course-1"
	course.Chapters[0].ID = "c1"
	course.Chapters[1].ID = "c2"
	course.Chapters[0].Lectures[0].ID = "l1"
	course.Chapters[0].Lectures[1].ID = "l2"
	course.Chapters[1].Lectures[0].ID = "l3"
	course.Chapters[1].Lectures[1].ID = "l4"
	for i := range course.Chapters {
		for j := range course.Chapters[i].Lectures {
			course.Chapters[i].Lectures[j].CourseID = course.ID
			course.Chapters[i].Lectures[j].ChapterID = course.Chapters[i].ID
		}
	}
	return course
}

func newProgressFixture(t *testing.T) (*ProgressService, *memCourseStore, *memProgressStore) {
	t.Helper()
	courses := newMemCourseStore()
	progress := newMemProgressStore()
	courses.put(testCourse())
	return NewProgressService(courses, progress), courses, progress
}

func TestGetProgressReturnsZeroValueSnapshot(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	snap, err := svc.GetProgress(42, "course-1")
	require.NoError(t, err)

	assert.Equal(t, "course-1", snap.CourseID)
	assert.Empty(t, snap.LectureCompleted, "无进度记录时完成集合应为空")
	assert.Equal(t, model.Position{Chapter: 0, Lecture: 0}, snap.LastPosition)
	assert.Equal(t, 0, snap.PercentComplete)
	assert.False(t, snap.Completed)
}

func TestGetProgressDeletedCourse(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	snap, err := svc.GetProgress(42, "gone")
	require.NoError(t, err, "课程已删除时读取进度不应报错")
	assert.Equal(t, "gone", snap.CourseID)
	assert.Equal(t, 0, snap.PercentComplete)
	assert.Empty(t, snap.LectureCompleted)
}

func TestReportProgressCompletion(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	snap, err := svc.ReportProgress(42, ReportProgressRequest{
		CourseID: "course-1", LectureID: "l1", Completed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, snap.PercentComplete)
	assert.True(t, snap.LectureCompleted.Contains("l1"))
	assert.False(t, snap.Completed)
}

func TestReportProgressIdempotent(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	req := ReportProgressRequest{CourseID: "course-1", LectureID: "l1", Completed: true}
	_, err := svc.ReportProgress(42, req)
	require.NoError(t, err)

	snap, err := svc.ReportProgress(42, req)
	require.NoError(t, err)

	assert.Len(t, snap.LectureCompleted, 1, "重复上报同一讲座不应使集合增长")
	assert.Equal(t, 25, snap.PercentComplete)
}

func TestReportProgressPositionOnly(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	// completed=false 只移动位置指针，不动完成集合
	snap, err := svc.ReportProgress(42, ReportProgressRequest{
		CourseID: "course-1", LectureID: "l3", Completed: false,
	})
	require.NoError(t, err)

	assert.Empty(t, snap.LectureCompleted)
	assert.Equal(t, 0, snap.PercentComplete)
	assert.Equal(t, model.Position{Chapter: 1, Lecture: 0}, snap.LastPosition)
}

func TestReportProgressFullCompletion(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	for _, id := range []string{"l1", "l2", "l3", "l4"} {
		_, err := svc.ReportProgress(42, ReportProgressRequest{
			CourseID: "course-1", LectureID: id, Completed: true,
		})
		require.NoError(t, err)
	}

	snap, err := svc.GetProgress(42, "course-1")
	require.NoError(t, err)
	assert.Equal(t, 100, snap.PercentComplete)
	assert.True(t, snap.Completed)
}

func TestReportProgressUnknownCourse(t *testing.T) {
	svc, _, _ := newProgressFixture(t)

	_, err := svc.ReportProgress(42, ReportProgressRequest{
		CourseID: "gone", LectureID: "l1", Completed: true,
	})
	assert.Error(t, err)
}

func TestPercentCompleteIgnoresStaleIDs(t *testing.T) {
	course := testCourse()

	// 讲座被删后留下的陈旧ID不参与计数
	completed := model.LectureIDSet{"l1", "removed-lecture"}
	assert.Equal(t, 25, PercentComplete(course, completed))
}

func TestPercentCompleteEmptyCourse(t *testing.T) {
	course := &model.Course{}
	course.ID = "empty"

	assert.Equal(t, 0, PercentComplete(course, model.LectureIDSet{"l1"}))
}

func TestPercentCompleteRounding(t *testing.T) {
	course := testCourse()
	course.Chapters[1].Lectures = course.Chapters[1].Lectures[:1] // 共 3 讲

	// 1/3 → 33，2/3 → 67
	assert.Equal(t, 33, PercentComplete(course, model.LectureIDSet{"l1"}))
	assert.Equal(t, 67, PercentComplete(course, model.LectureIDSet{"l1", "l2"}))
}

func TestLastPositionFallsBackAfterRestructure(t *testing.T) {
	svc, courses, _ := newProgressFixture(t)

	_, err := svc.ReportProgress(42, ReportProgressRequest{
		CourseID: "course-1", LectureID: "l4", Completed: false,
	})
	require.NoError(t, err)

	// 第二章被删除后，位置指针回退到 (0,0)
	course, err := courses.FindByID("course-1")
	require.NoError(t, err)
	course.Chapters = course.Chapters[:1]

	snap, err := svc.GetProgress(42, "course-1")
	require.NoError(t, err)
	assert.Equal(t, model.Position{Chapter: 0, Lecture: 0}, snap.LastPosition)
}

func TestCompletedFlagRecoversWhenLecturesAdded(t *testing.T) {
	svc, courses, _ := newProgressFixture(t)

	for _, id := range []string{"l1", "l2", "l3", "l4"} {
		_, err := svc.ReportProgress(42, ReportProgressRequest{
			CourseID: "course-1", LectureID: id, Completed: true,
		})
		require.NoError(t, err)
	}

	// 完课后教师追加新讲座，读取时百分比应随之回落
	course, err := courses.FindByID("course-1")
	require.NoError(t, err)
	extra := model.Lecture{Title: "讲座五", Order: 2, CourseID: course.ID, ChapterID: "c2"}
	extra.ID = "l5"
	course.Chapters[1].Lectures = append(course.Chapters[1].Lectures, extra)

	snap, err := svc.GetProgress(42, "course-1")
	require.NoError(t, err)
	assert.Equal(t, 80, snap.PercentComplete)
	assert.False(t, snap.Completed, "完成判定以读取时计算为准，不信缓存标志")
}
