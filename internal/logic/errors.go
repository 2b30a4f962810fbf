package logic

import (
	"github.com/blues/crowdmint/internal/errs"
)

// external 非业务错误统一归为外部调用失败，业务错误原样返回
func external(err error) error {
	if err == nil {
		return nil
	}
	if errs.CodeOf(err) != "" {
		return err
	}
	return errs.Wrap(errs.CodeExternalCallFailed, err)
}
