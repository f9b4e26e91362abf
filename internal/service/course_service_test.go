package service

import (
	"context"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseFixture(t *testing.T) (*CourseService, *memCourseStore, *memEnrollmentStore, *memProgressStore, *memRatingStore) {
	t.Helper()
	courses := newMemCourseStore()
	enrollments := newMemEnrollmentStore()
	progress := newMemProgressStore()
	ratings := newMemRatingStore()
	courses.put(testCourse())
	return NewCourseService(courses, enrollments, progress, ratings, nil), courses, enrollments, progress, ratings
}

func TestCreateCourseValidation(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	cases := []CreateCourseRequest{
		{Description: "d", AccessCode: "X"},       // 缺标题
		{Title: "t", AccessCode: "X"},             // 缺描述
		{Title: "t", Description: "d"},            // 缺口令
		{Title: "  ", Description: "d", AccessCode: "X"}, // 空白标题
	}
	for _, req := range cases {
		_, err := svc.CreateCourse(1, req)
		assert.ErrorIs(t, err, util.ErrValidationFailed)
	}
}

func TestCreateCourseBuildsOrderedTree(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	course, err := svc.CreateCourse(1, CreateCourseRequest{
		Title:       "新课",
		Description: "desc",
		AccessCode:  "CODE42",
		Content: []ChapterRequest{
			{Title: "甲", Lectures: []LectureRequest{
				{Title: "一", URL: "https://www.youtube.com/watch?v=abc"},
				{Title: "二", URL: "https://youtu.be/def", Duration: 10},
			}},
			{Title: "乙"},
		},
	})
	require.NoError(t, err)

	require.Len(t, course.Chapters, 2)
	assert.Equal(t, 0, course.Chapters[0].Order)
	assert.Equal(t, 1, course.Chapters[1].Order)

	lectures := course.Chapters[0].Lectures
	require.Len(t, lectures, 2)
	assert.Equal(t, "https://www.youtube.com/embed/abc", lectures[0].URL, "视频链接应规整为 embed 形式")
	assert.Equal(t, "https://www.youtube.com/embed/def", lectures[1].URL)
	assert.Equal(t, uint(1), lectures[0].Duration, "缺省时长按 1 分钟处理")
	assert.NotEmpty(t, lectures[0].ID)
}

func TestCreateCourseRejectsBadLectureType(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	_, err := svc.CreateCourse(1, CreateCourseRequest{
		Title:       "新课",
		Description: "desc",
		AccessCode:  "CODE42",
		Content: []ChapterRequest{
			{Title: "甲", Lectures: []LectureRequest{{Title: "一", Type: "audio"}}},
		},
	})
	assert.ErrorIs(t, err, util.ErrValidationFailed)
}

func TestRenderCourseViewAnonymous(t *testing.T) {
	course := testCourse()

	view := RenderCourseView(course, nil, false)

	assert.Empty(t, view.AccessCode, "匿名访客不应看到口令")
	l1 := view.Chapters[0].Lectures[0]
	l2 := view.Chapters[0].Lectures[1]
	assert.NotEmpty(t, l1.URL, "试看讲座的地址保留")
	assert.Empty(t, l2.URL, "非试看讲座的地址置空")
	assert.Equal(t, "讲座二", l2.Title, "内容树结构与标题对所有人可见")
}

func TestRenderCourseViewOwner(t *testing.T) {
	course := testCourse()

	view := RenderCourseView(course, &util.Claims{UserID: 1}, false)

	assert.Equal(t, "ABC123", view.AccessCode, "归属教师可见口令")
	for _, ch := range view.Chapters {
		for _, l := range ch.Lectures {
			assert.NotEmpty(t, l.URL)
		}
	}
}

func TestRenderCourseViewEnrolled(t *testing.T) {
	course := testCourse()

	view := RenderCourseView(course, &util.Claims{UserID: 42}, true)

	assert.Empty(t, view.AccessCode)
	for _, ch := range view.Chapters {
		for _, l := range ch.Lectures {
			assert.NotEmpty(t, l.URL)
		}
	}
}

func TestGetCourseViewUnknown(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	_, err := svc.GetCourseView("gone", nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetCourseViewEnrolledCount(t *testing.T) {
	svc, _, enrollments, _, _ := newCourseFixture(t)

	require.NoError(t, enrollments.Enroll("course-1", 42))
	require.NoError(t, enrollments.Enroll("course-1", 7))

	view, err := svc.GetCourseView("course-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.EnrolledCount)
}

func TestListPublishedIsSanitized(t *testing.T) {
	svc, courses, _, _, _ := newCourseFixture(t)

	hidden := testCourse()
	hidden.ID = "course-2"
	hidden.Published = false
	courses.put(hidden)

	views, err := svc.ListPublished(context.Background())
	require.NoError(t, err)

	require.Len(t, views, 1, "未发布课程不进目录")
	assert.Empty(t, views[0].AccessCode)
}

func TestUpdateCourseOwnership(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	title := "改名"
	err := svc.UpdateCourse("course-1", 999, UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	err = svc.UpdateCourse("gone", 1, UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUpdateCoursePublishedNeedsAccessCode(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	empty := ""
	err := svc.UpdateCourse("course-1", 1, UpdateCourseRequest{AccessCode: &empty})
	assert.ErrorIs(t, err, util.ErrValidationFailed, "已发布课程不允许清空口令")
}

func TestUpdateCourseRotatesAccessCode(t *testing.T) {
	svc, courses, _, _, _ := newCourseFixture(t)

	code := "NEW999"
	require.NoError(t, svc.UpdateCourse("course-1", 1, UpdateCourseRequest{AccessCode: &code}))

	course, err := courses.FindByID("course-1")
	require.NoError(t, err)
	assert.Equal(t, "NEW999", course.AccessCode)
}

func TestAppendChapterOrder(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	chapter, err := svc.AppendChapter("course-1", 1, "第三章")
	require.NoError(t, err)
	assert.Equal(t, 2, chapter.Order, "新章节追加在末尾")

	_, err = svc.AppendChapter("course-1", 999, "越权章节")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestAppendLecture(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	lecture, err := svc.AppendLecture("course-1", "c1", 1, LectureRequest{
		Title: "讲座五", URL: "https://vimeo.com/123456",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, lecture.Order)
	assert.Equal(t, "https://player.vimeo.com/video/123456", lecture.URL)

	_, err = svc.AppendLecture("course-1", "no-such-chapter", 1, LectureRequest{Title: "x"})
	assert.ErrorIs(t, err, util.ErrChapterNotFound)
}

func TestDeleteCourseCascade(t *testing.T) {
	svc, courses, enrollments, progress, ratings := newCourseFixture(t)

	require.NoError(t, enrollments.Enroll("course-1", 42))
	require.NoError(t, progress.Save(&model.CourseProgress{
		UserID: 42, CourseID: "course-1", LectureCompleted: model.LectureIDSet{"l1"},
	}))
	require.NoError(t, ratings.Upsert(&model.CourseRating{CourseID: "course-1", UserID: 42, Rating: 5}))

	require.NoError(t, svc.DeleteCourse("course-1", 1))

	_, err := courses.FindByID("course-1")
	assert.Error(t, err, "课程本体应被删除")

	n, err := enrollments.CountByCourse("course-1")
	require.NoError(t, err)
	assert.Zero(t, n, "成员关系应随课程清理")

	_, err = progress.FindByUserAndCourse(42, "course-1")
	assert.Error(t, err, "进度记录应随课程清理")

	summary, err := ratings.SummaryByCourse("course-1")
	require.NoError(t, err)
	assert.Zero(t, summary.Count, "评分应随课程清理")
}

func TestDeleteCourseOwnership(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	err := svc.DeleteCourse("course-1", 999)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestRateCourseRequiresEnrollment(t *testing.T) {
	svc, _, _, _, _ := newCourseFixture(t)

	_, err := svc.RateCourse("course-1", 42, 4)
	assert.ErrorIs(t, err, util.ErrNotEnrolled, "未报名成员不能评分")
}

func TestRateCourseValidation(t *testing.T) {
	svc, _, enrollments, _, _ := newCourseFixture(t)
	require.NoError(t, enrollments.Enroll("course-1", 42))

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.RateCourse("course-1", 42, rating)
		assert.ErrorIs(t, err, util.ErrValidationFailed)
	}

	_, err := svc.RateCourse("gone", 42, 4)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestRateCourseUpsert(t *testing.T) {
	svc, _, enrollments, _, _ := newCourseFixture(t)
	require.NoError(t, enrollments.Enroll("course-1", 42))

	_, err := svc.RateCourse("course-1", 42, 3)
	require.NoError(t, err)

	summary, err := svc.RateCourse("course-1", 42, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Count, "同一成员重复评分只保留最新一条")
	assert.Equal(t, 5.0, summary.Average)
}

func TestRateCourseAverage(t *testing.T) {
	svc, _, enrollments, _, _ := newCourseFixture(t)
	require.NoError(t, enrollments.Enroll("course-1", 42))
	require.NoError(t, enrollments.Enroll("course-1", 7))

	_, err := svc.RateCourse("course-1", 42, 4)
	require.NoError(t, err)
	summary, err := svc.RateCourse("course-1", 7, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 1e-9)
}

func TestCourseViewCarriesRatingSummary(t *testing.T) {
	svc, _, enrollments, _, _ := newCourseFixture(t)
	require.NoError(t, enrollments.Enroll("course-1", 42))
	_, err := svc.RateCourse("course-1", 42, 4)
	require.NoError(t, err)

	view, err := svc.GetCourseView("course-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.Rating.Count)
	assert.Equal(t, 4.0, view.Rating.Average)

	views, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].Rating.Count, "目录视图同样携带评分汇总")
}
