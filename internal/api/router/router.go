package router

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-parser-go/internal/api/handler"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler) {
	api := h.Group("/api/v1")

	// 异步上传：文件入MinIO后发消息，由消费者解析
	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := resumeHandler.HandleResumeUpload(c, file, fileHeader.Size, fileHeader.Filename)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 同步解析：直接返回解析结果，不落库
	api.POST("/resume/parse", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		parsed, err := resumeHandler.HandleSyncParse(c, file, fileHeader.Filename)
		if err != nil {
			ctx.JSON(consts.StatusUnprocessableEntity, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, parsed)
	})

	// 分页列出简历
	api.GET("/resumes", func(c context.Context, ctx *app.RequestContext) {
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
		offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

		records, err := resumeHandler.ListResumes(c, limit, offset)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"resumes": records, "count": len(records)})
	})

	// 按字段模糊搜索
	api.GET("/resumes/search", func(c context.Context, ctx *app.RequestContext) {
		term := ctx.Query("q")
		if term == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "搜索关键词不能为空"})
			return
		}
		field := ctx.DefaultQuery("field", "candidate_name")

		records, err := resumeHandler.SearchResumes(c, term, field)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"resumes": records, "count": len(records)})
	})

	// 聚合统计
	api.GET("/resumes/stats", func(c context.Context, ctx *app.RequestContext) {
		stats, err := resumeHandler.GetStatistics(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, stats)
	})

	// 单条查询
	api.GET("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")

		record, err := resumeHandler.GetResume(c, submissionUUID)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		if record == nil {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": "简历记录不存在"})
			return
		}
		ctx.JSON(consts.StatusOK, record)
	})

	// 删除记录及关联对象
	api.DELETE("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")

		if err := resumeHandler.DeleteResume(c, submissionUUID); err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "deleted"})
	})

	// 导出为json/csv/xlsx
	api.GET("/resume/:uuid/export", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		format := ctx.DefaultQuery("format", "json")

		result, err := resumeHandler.ExportResume(c, submissionUUID, format)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.Header("Content-Disposition", "attachment; filename="+result.Filename)
		ctx.Data(consts.StatusOK, result.ContentType, result.Data)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
