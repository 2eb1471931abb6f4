package vm

func minStack(pops, push int) int {
	return pops
}

func maxStack(pops, push int) int {
	return stackLimit + pops - push
}

func minSwapStack(n int) int { return minStack(n, n) }
func maxSwapStack(n int) int { return maxStack(n, n) }
func minDupStack(n int) int  { return minStack(n, n+1) }
func maxDupStack(n int) int  { return maxStack(n, n+1) }
