package controllers

import (
	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
)

func personRefsFromStudents(students []*models.Student) []dto.PersonRef {
	refs := make([]dto.PersonRef, 0, len(students))
	for _, s := range students {
		refs = append(refs, dto.PersonRef{
			ID:         s.ID,
			FirstName:  s.FirstName,
			LastName:   s.LastName,
			MiddleName: s.MiddleName,
		})
	}
	return refs
}

func personRefsFromTeachers(teachers []*models.Teacher) []dto.PersonRef {
	refs := make([]dto.PersonRef, 0, len(teachers))
	for _, t := range teachers {
		refs = append(refs, dto.PersonRef{
			ID:         t.ID,
			FirstName:  t.FirstName,
			LastName:   t.LastName,
			MiddleName: t.MiddleName,
		})
	}
	return refs
}
