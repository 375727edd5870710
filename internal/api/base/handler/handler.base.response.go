package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"venta_maquinarias/internal/common"
	"venta_maquinarias/internal/global"
	"venta_maquinarias/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandlerWrapper chạy fn và chuyển panic thành response lỗi 500
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).
				Errorf("Handler panic: %v", r)
			err = HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse chuẩn hoá response {code, message, data|details, status}
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			body := fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"status":  "error",
			}
			if customErr.Details != nil {
				if detailErr, ok := customErr.Details.(error); ok {
					body["details"] = detailErr.Error()
				} else {
					body["details"] = customErr.Details
				}
			}
			return JSONResponse(c, customErr.StatusCode, body)
		}
		logger.WithRequest(c).WithError(err).Error("Lỗi không xác định")
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// ParseAndValidate đọc body JSON vào input và validate bằng global.Validate
func ParseAndValidate(c fiber.Ctx, input interface{}) error {
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(input); err != nil {
			return common.NewError(common.ErrCodeValidationFormat, common.MsgInvalidFormat, common.StatusBadRequest, err)
		}
	}
	if global.Validate != nil {
		if err := global.Validate.Struct(input); err != nil {
			return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
		}
	}
	return nil
}

// ActiveOrganizationID lấy tổ chức đang làm việc (do OrganizationContextMiddleware set)
func ActiveOrganizationID(c fiber.Ctx) (primitive.ObjectID, error) {
	orgIDStr, ok := c.Locals("active_organization_id").(string)
	if !ok || orgIDStr == "" {
		return primitive.NilObjectID, common.ErrTenantRequired
	}
	orgID, err := primitive.ObjectIDFromHex(orgIDStr)
	if err != nil {
		return primitive.NilObjectID, common.ErrTenantRequired
	}
	return orgID, nil
}
