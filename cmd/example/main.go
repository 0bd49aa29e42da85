// Command example is a direct, illustrative walk through the allocator's
// surface: create a pool, create a sub-pool of it, alloc/free from each,
// dispatch a couple of odd sizes through the multi-size pool, then destroy
// the parent and show that the sub-pool went down with it. Not part of the
// library; read alongside mpool_test.go for the programmatic API.
package main

import (
	"fmt"

	"github.com/lunfardo314/mpool"
)

func main() {
	mpool.Init()

	myPool := mpool.Create(nil, 256, nil, nil)
	fmt.Println("create a memory pool: myPool. Its object size is 256.")

	mySubPool := mpool.Create(&myPool, 128, nil, nil)
	fmt.Println("create a sub pool of myPool, name is mySubPool.")

	m := mySubPool.Alloc()
	fmt.Println("alloc a memory block from mySubPool. Its object size is 128.")
	fmt.Printf("the memory block size is %d.\n", mpool.Size(m))
	mpool.Free(m)
	fmt.Println("give back the memory block to mySubPool.")

	m = myPool.Alloc()
	fmt.Println("alloc a memory block from myPool.")
	fmt.Printf("the memory block size is %d.\n", mpool.Size(m))
	mpool.Free(m)
	fmt.Println("give back the memory block to myPool.")

	m = mpool.AllocMulti(nil, 69)
	fmt.Println("alloc a random memory block of size 69.")
	fmt.Printf("the actual memory block size is %d.\n", mpool.Size(m))
	mpool.Free(m)

	m = mpool.AllocMulti(nil, 2096)
	fmt.Println("alloc a random memory block of size 2096.")
	fmt.Printf("the actual memory block size is %d.\n", mpool.Size(m))
	mpool.Free(m)

	myPool.Destroy()
	fmt.Println("destroy myPool.")
	fmt.Printf("when myPool was destroyed, its sub pool, mySubPool, was %s destroyed.\n",
		map[bool]string{true: "not", false: "also"}[mySubPool.Avail()])

	mpool.Finalize()
}
