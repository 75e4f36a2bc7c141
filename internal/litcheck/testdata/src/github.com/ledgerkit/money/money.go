package money

type Amount struct{ units int64 }

func MustLit(s string) Amount { return Amount{} }

func ParseLit(s string) (Amount, error) { return Amount{}, nil }
