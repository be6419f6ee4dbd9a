package types

// Enum values match the product's wire format (pt-BR).

type FinanceType string

const (
	FinanceTypeIncome  FinanceType = "Receita"
	FinanceTypeExpense FinanceType = "Despesa"
)

type FinanceStatus string

const (
	FinanceStatusPending FinanceStatus = "Pendente"
	FinanceStatusPaid    FinanceStatus = "Pago"
	FinanceStatusOverdue FinanceStatus = "Atrasada"
)

type GoalRecordType string

const (
	GoalRecordTypeAdd      GoalRecordType = "Adicionar"
	GoalRecordTypeWithdraw GoalRecordType = "Retirar"
)

func (t FinanceType) Valid() bool {
	return t == FinanceTypeIncome || t == FinanceTypeExpense
}

func (s FinanceStatus) Valid() bool {
	return s == FinanceStatusPending || s == FinanceStatusPaid || s == FinanceStatusOverdue
}

func (t GoalRecordType) Valid() bool {
	return t == GoalRecordTypeAdd || t == GoalRecordTypeWithdraw
}
