package services

import "errors"

// Common service errors
var (
	ErrNotFound                = errors.New("registro não encontrado")
	ErrDuplicateActiveContract = errors.New("já existe um contrato ativo para este combustível")
	ErrContractInactive        = errors.New("nenhum contrato ativo encontrado para este combustível")
	ErrMissingFilter           = errors.New("selecione um filtro para gerar o relatório")
	ErrNoResults               = errors.New("nenhum registro encontrado para o filtro informado")
	ErrInvalidPassword         = errors.New("senha inválida")
)
