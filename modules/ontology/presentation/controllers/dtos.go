package controllers

import (
	"github.com/xe-labs/ontoview/pkg/constants"
)

type ProjectTreeDTO struct {
	ProjectID string `validate:"required,localname"`
}

func (d *ProjectTreeDTO) Ok() bool {
	return constants.Validate.Struct(d) == nil
}

type SearchDTO struct {
	Query string `form:"q"`
}
